package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kindred-app/crudjen/internal/manifest"
	"github.com/kindred-app/crudjen/internal/synth"
)

// batchCmd scaffolds every resource listed in a manifest.
func batchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Scaffold every resource listed in a manifest",
		Long: `Scaffold several resources in one run. Files are only written if every
resource of the manifest generates cleanly.

With --import-base, a routes_gen.go registering every scaffolded package is
written to the output directory. The import base is the import path of that
directory.

Manifest format:
  entities:
    - name: Job
    - name: Cafe
      variant: geolocated
    - name: Person
      slug: people

Examples:
  crudjen batch -f entities.yaml
  crudjen batch -f entities.yaml --import-base example.com/backend/internal/handlers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return errors.New("a manifest is required (-f)")
			}
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}
			ents, err := m.Entities()
			if err != nil {
				return err
			}

			opts := []synth.Option{synth.WithAPIPrefix(e.cfg.APIPrefix)}
			if e.cfg.ImportBase != "" {
				opts = append(opts, synth.WithRegistry(e.cfg.ImportBase))
			}
			files, err := synth.SynthesizeAll(ents, opts...)
			if err != nil {
				return err
			}
			return e.emit(cmd, ents, files)
		},
	}
	addEmitFlags(cmd)
	cmd.Flags().StringP("file", "f", "", "manifest listing the entities to scaffold")
	cmd.Flags().String("import-base", "", "import path of the output directory; enables routes_gen.go")
	return cmd
}
