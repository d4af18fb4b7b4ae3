package cli

import (
	"github.com/spf13/cobra"

	"github.com/kindred-app/crudjen/internal/entity"
	"github.com/kindred-app/crudjen/internal/synth"
)

// crudCmd scaffolds a plain resource.
func crudCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crud <Name>",
		Short: "Scaffold a plain CRUD resource",
		Long: `Scaffold the types, service, handlers and routes of a resource stored in
the MongoDB collection named after it.

Examples:
  crudjen crud Job
  crudjen crud Person --slug people`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.scaffold(cmd, args[0], entity.Plain)
		},
	}
	addEmitFlags(cmd)
	cmd.Flags().String("slug", "", "collection name and route segment (default lowercase name + s)")
	return cmd
}

// locationCrudCmd scaffolds a geolocated resource.
func locationCrudCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location-crud <Name>",
		Short: "Scaffold a CRUD resource with a nearby search",
		Long: `Scaffold a resource whose documents carry a location, plus a
POST /<slug>/nearby route that finds documents within a radius of a point.

Examples:
  crudjen location-crud Cafe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.scaffold(cmd, args[0], entity.Geolocated)
		},
	}
	addEmitFlags(cmd)
	cmd.Flags().String("slug", "", "collection name and route segment (default lowercase name + s)")
	return cmd
}

// generateCmd scaffolds a resource of any variant.
func generateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <Name>",
		Short: "Scaffold a resource of the given variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _ := cmd.Flags().GetString("variant")
			v, err := entity.ParseVariant(s)
			if err != nil {
				return err
			}
			return e.scaffold(cmd, args[0], v)
		},
	}
	addEmitFlags(cmd)
	cmd.Flags().String("slug", "", "collection name and route segment (default lowercase name + s)")
	cmd.Flags().String("variant", string(entity.Plain), "resource variant: plain or geolocated")
	return cmd
}

func (e *env) scaffold(cmd *cobra.Command, name string, v entity.Variant) error {
	slug, _ := cmd.Flags().GetString("slug")

	ent, err := synth.NewEntity(name, v, synth.WithSlug(slug))
	if err != nil {
		return err
	}
	ents := []entity.Entity{ent}
	files, err := synth.SynthesizeAll(ents, synth.WithAPIPrefix(e.cfg.APIPrefix))
	if err != nil {
		return err
	}
	return e.emit(cmd, ents, files)
}
