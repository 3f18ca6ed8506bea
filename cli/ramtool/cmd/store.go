package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramkit/ramkit/internal/imagestore"
	"github.com/ramkit/ramkit/internal/keyvaluedb/boltdb"
	"github.com/ramkit/ramkit/internal/util"
)

const (
	flagNameDescription = "description"
	flagNameJSON        = "json"
)

func newStoreCmd(baseConfig *baseConfiguration) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "store",
		Short: "Manages named images in the local image store ($RAM_HOME/images.db)",
	}
	cmd.AddCommand(newStorePutCmd(baseConfig))
	cmd.AddCommand(newStoreGetCmd(baseConfig))
	cmd.AddCommand(newStoreListCmd(baseConfig))
	cmd.AddCommand(newStoreDeleteCmd(baseConfig))
	return cmd
}

// withStore opens the image store for the duration of f.
func withStore(config *baseConfiguration, f func(s *imagestore.Store) error) (err error) {
	if err := os.MkdirAll(config.HomeDir, 0700); err != nil {
		return fmt.Errorf("failed to create home directory, %w", err)
	}
	db, err := boltdb.New(config.imageStoreFile())
	if err != nil {
		return fmt.Errorf("failed to open image store %s, %w", config.imageStoreFile(), err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	s, err := imagestore.New(db)
	if err != nil {
		return err
	}
	return f(s)
}

func newStorePutCmd(config *baseConfiguration) *cobra.Command {
	var description string
	var cmd = &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Stores an image file under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := loadRegion(args[1])
			if err != nil {
				return err
			}
			return withStore(config, func(s *imagestore.Store) error {
				info, err := s.Put(args[0], mem, description)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s, %d bytes, sha256 %s\n", info.Name, info.Size, info.DigestHex())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&description, flagNameDescription, "", "free text description")
	return cmd
}

func newStoreGetCmd(config *baseConfiguration) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME OUT",
		Short: "Writes the image stored under NAME to the OUT file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(config, func(s *imagestore.Store) error {
				mem, _, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if err := util.WriteFileAtomic(args[1], mem.AllBytes()); err != nil {
					return fmt.Errorf("failed to write image, %w", err)
				}
				log.Debug("Wrote image %s to %s", args[0], args[1])
				return nil
			})
		},
	}
}

func newStoreListCmd(config *baseConfiguration) *cobra.Command {
	var asJSON bool
	var cmd = &cobra.Command{
		Use:   "list",
		Short: "Lists stored images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(config, func(s *imagestore.Store) error {
				empty, err := s.Empty()
				if err != nil {
					return err
				}
				if empty && !asJSON {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no images stored")
					return err
				}
				infos, err := s.List()
				if err != nil {
					return err
				}
				if asJSON {
					type entry struct {
						*imagestore.ImageInfo
						Digest string `json:"sha256"`
					}
					entries := make([]entry, 0, len(infos))
					for _, info := range infos {
						entries = append(entries, entry{ImageInfo: info, Digest: info.DigestHex()})
					}
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(entries)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSIZE\tSHA256\tDESCRIPTION")
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", info.Name, info.Size, info.DigestHex(), info.Description)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, flagNameJSON, false, "print JSON")
	return cmd
}

func newStoreDeleteCmd(config *baseConfiguration) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Removes the image stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(config, func(s *imagestore.Store) error {
				return s.Delete(args[0])
			})
		},
	}
}
