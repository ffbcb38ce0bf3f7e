// Package mcpserver exposes envlens operations over the Model Context
// Protocol so agents and IDEs can locate and edit env files through
// the same round-trip-safe engine as the CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/envio"
	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/scanner"
)

func openSession(path string) (*document.Session, error) {
	raw, ref, err := envio.Read(path)
	if err != nil {
		return nil, err
	}
	return document.NewSession(ref, raw), nil
}

func save(s *document.Session, backup bool) error {
	if err := envio.Write(s.File().AbsolutePath, s.RawText(), envio.WriteOptions{CreateBackup: backup}); err != nil {
		return err
	}
	s.Apply(document.MarkSaved{})
	return nil
}

func Run(ctx context.Context) error {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "envlens",
		Version: "0.1.0",
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "scan_env_files",
		Description: "Find .env and .env.* files under a directory tree, grouped by project folder. Skips node_modules, .git, build output, and .gitignore'd paths. Returns groups with file references (path, name, size, modified time).",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Root string `json:"root" jsonschema:"directory to scan (default: current)"`
	}) (*mcpsdk.CallToolResult, any, error) {
		root := args.Root
		if root == "" {
			root = "."
		}
		ign, _ := scanner.LoadGitignore(root)
		res, err := scanner.Scan(ctx, root, scanner.Options{Ignore: ign})
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_keys",
		Description: "List the key/value entries of an env file in document order, duplicates included, plus the set of duplicated keys.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File string `json:"file" jsonschema:"path to the env file"`
	}) (*mcpsdk.CallToolResult, any, error) {
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		type entry struct {
			Key    string `json:"key"`
			Value  string `json:"value"`
			Export bool   `json:"export,omitempty"`
		}
		var entries []entry
		for _, kv := range envline.KeyValues(s.Lines()) {
			entries = append(entries, entry{Key: kv.Key, Value: kv.Value, Export: kv.HasExport})
		}
		return jsonResult(map[string]any{
			"file":       s.File().AbsolutePath,
			"entries":    entries,
			"duplicates": s.Duplicates(),
		}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_value",
		Description: "Get the value of one key in an env file. On duplicated keys the last occurrence in document order wins.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File string `json:"file" jsonschema:"path to the env file"`
		Key  string `json:"key" jsonschema:"variable name"`
	}) (*mcpsdk.CallToolResult, any, error) {
		if args.Key == "" {
			return errResult("key is required"), nil, nil
		}
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		value, found := "", false
		for _, kv := range envline.KeyValues(s.Lines()) {
			if kv.Key == args.Key {
				value = kv.Value
				found = true
			}
		}
		if !found {
			return errResult(fmt.Sprintf("key %q not found", args.Key)), nil, nil
		}
		return jsonResult(map[string]any{"key": args.Key, "value": value}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "set_value",
		Description: "Create or update a key in an env file. Preserves comments, blank lines, and the formatting of untouched lines. New keys are inserted after the last existing key-value line. Set backup to keep a timestamped copy of the previous content.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File   string `json:"file" jsonschema:"path to the env file"`
		Key    string `json:"key" jsonschema:"variable name (will be normalized: uppercase, whitespace to underscores)"`
		Value  string `json:"value" jsonschema:"value to store, taken verbatim"`
		Backup bool   `json:"backup" jsonschema:"copy the file aside before writing"`
	}) (*mcpsdk.CallToolResult, any, error) {
		key, ok := envline.NormalizeKey(args.Key)
		if !ok {
			return errResult("key is required"), nil, nil
		}
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		s.Apply(document.SetKey{Key: key, Value: args.Value})
		if err := save(s, args.Backup); err != nil {
			return errResult(err.Error()), nil, nil
		}
		_ = history.Log(s.File().FolderPath, history.OpSet, s.File().FileName, key)
		return jsonResult(map[string]any{"ok": true, "key": key, "path": s.File().AbsolutePath}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "rename_key",
		Description: "Rename a key in an env file, keeping line positions and values. Every duplicate occurrence is renamed.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File   string `json:"file" jsonschema:"path to the env file"`
		OldKey string `json:"old_key" jsonschema:"current variable name"`
		NewKey string `json:"new_key" jsonschema:"new variable name (normalized)"`
		Backup bool   `json:"backup" jsonschema:"copy the file aside before writing"`
	}) (*mcpsdk.CallToolResult, any, error) {
		// old_key is a lookup, taken as written; only the new name is
		// normalized.
		oldKey := args.OldKey
		if oldKey == "" {
			return errResult("old_key is required"), nil, nil
		}
		newKey, ok := envline.NormalizeKey(args.NewKey)
		if !ok {
			return errResult("new_key is required"), nil, nil
		}
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		s.Apply(document.RenameKey{OldKey: oldKey, NewKey: newKey})
		if err := save(s, args.Backup); err != nil {
			return errResult(err.Error()), nil, nil
		}
		_ = history.Log(s.File().FolderPath, history.OpRename, s.File().FileName, oldKey, newKey)
		return jsonResult(map[string]any{"ok": true, "renamed": oldKey, "to": newKey}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_key",
		Description: "Remove every line carrying a key from an env file. All other lines keep their position and formatting. Warning: irreversible unless backup is set.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File   string `json:"file" jsonschema:"path to the env file"`
		Key    string `json:"key" jsonschema:"variable name to remove"`
		Backup bool   `json:"backup" jsonschema:"copy the file aside before writing"`
	}) (*mcpsdk.CallToolResult, any, error) {
		key, ok := envline.NormalizeKey(args.Key)
		if !ok {
			return errResult("key is required"), nil, nil
		}
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		s.Apply(document.RemoveKey{Key: key})
		if err := save(s, args.Backup); err != nil {
			return errResult(err.Error()), nil, nil
		}
		_ = history.Log(s.File().FolderPath, history.OpUnset, s.File().FileName, key)
		return jsonResult(map[string]any{"ok": true, "deleted": key}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "diff_files",
		Description: "Semantic diff of two env files: one change per key (added/updated/removed), ordered by key. Comments and blank lines never contribute; duplicated keys project to their last occurrence.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		Before string `json:"before" jsonschema:"path to the before file"`
		After  string `json:"after" jsonschema:"path to the after file"`
	}) (*mcpsdk.CallToolResult, any, error) {
		b, err := openSession(args.Before)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		a, err := openSession(args.After)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		changes := envline.Diff(b.Lines(), a.Lines())
		type item struct {
			Kind   string `json:"kind"`
			Key    string `json:"key"`
			Before string `json:"before,omitempty"`
			After  string `json:"after,omitempty"`
		}
		items := make([]item, 0, len(changes))
		for _, c := range changes {
			items = append(items, item{Kind: c.Kind.String(), Key: c.Key, Before: c.Before, After: c.After})
		}
		return jsonResult(map[string]any{"changes": items}), nil, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "find_duplicates",
		Description: "Report keys that appear on two or more lines of an env file. Detection only; nothing is fixed.",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, args struct {
		File string `json:"file" jsonschema:"path to the env file"`
	}) (*mcpsdk.CallToolResult, any, error) {
		s, err := openSession(args.File)
		if err != nil {
			return errResult(err.Error()), nil, nil
		}
		dups := s.Duplicates()
		if dups == nil {
			dups = []string{}
		}
		return jsonResult(map[string]any{"file": s.File().AbsolutePath, "duplicates": dups}), nil, nil
	})

	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

// jsonResult marshals v into a single text content block.
func jsonResult(v any) *mcpsdk.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errResult(fmt.Sprintf("encode result: %v", err))
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}
}

func errResult(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "error: " + msg}},
	}
}
