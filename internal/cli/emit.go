package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kindred-app/crudjen"
	"github.com/kindred-app/crudjen/internal/bank"
	"github.com/kindred-app/crudjen/internal/config"
	"github.com/kindred-app/crudjen/internal/entity"
	"github.com/kindred-app/crudjen/internal/ui"
)

func addEmitFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "directory the entity packages are written to (default "+config.DefaultOutDir+")")
	cmd.Flags().String("api-prefix", "", "path prefix the routes are mounted under (default "+bank.DefaultAPIPrefix+")")
	cmd.Flags().Bool("dry-run", false, "print the generated files instead of writing them")
	cmd.Flags().BoolP("yes", "y", false, "overwrite existing files without asking")
}

// emit shows what files will be produced, asks before replacing existing
// ones, and writes them under the configured output directory.
func (e *env) emit(cmd *cobra.Command, ents []entity.Entity, files crudjen.Files) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	out := e.cfg.OutDir
	p := ui.New(cmd.OutOrStdout())

	fs := crudjen.NewFS()
	if err := fs.Add(files...); err != nil {
		return err
	}

	existing, err := fs.Existing(out)
	if err != nil {
		return err
	}
	exists := make(map[string]bool, len(existing))
	for _, path := range existing {
		exists[path] = true
	}

	for _, ent := range ents {
		p.Header("Scaffolding %s as %s in %s", ent.ID(), ent.Slug, filepath.Join(out, ent.Package))
	}
	p.Println()
	p.Println("Files:")
	for _, f := range fs.AsFiles() {
		target := filepath.Join(out, filepath.FromSlash(f.RelativePath))
		if exists[target] {
			p.Overwrite(target)
		} else {
			p.Planned(target)
		}
	}
	p.Println()
	p.Println("Routes:")
	for _, ent := range ents {
		set, err := bank.Select(ent.Variant)
		if err != nil {
			return err
		}
		for _, r := range set.Routes(ent.Names, bank.RenderOptions{APIPrefix: e.cfg.APIPrefix}) {
			p.Route(r.Method, r.Full)
		}
	}
	p.Println()

	if dryRun {
		p.Println("(dry-run mode - no files written)")
		p.Println()
		for _, f := range fs.AsFiles() {
			p.Dump(filepath.Join(out, filepath.FromSlash(f.RelativePath)), f.Data)
		}
		return nil
	}

	if len(existing) > 0 && !yes {
		if !p.Confirm(cmd.InOrStdin(), fmt.Sprintf("%d file(s) already exist and will be replaced. Proceed?", len(existing))) {
			p.Println("Aborted.")
			return nil
		}
	}

	if err := fs.Write(cmd.Context(), out); err != nil {
		return err
	}
	for _, f := range fs.AsFiles() {
		p.Created(filepath.Join(out, filepath.FromSlash(f.RelativePath)))
	}

	slog.LogAttrs(cmd.Context(), slog.LevelInfo, "scaffold written",
		slog.String("out_dir", out),
		slog.Int("entities", len(ents)),
		slog.Int("files", fs.Len()),
		slog.Int("replaced", len(existing)),
	)
	return nil
}
