package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available on the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level)
			gen := buildGenerator(cfg, log)

			h := gen.Health(cmd.Context())
			if !h.Running {
				return fmt.Errorf("backend %s is not reachable", cfg.Backend.Provider)
			}
			if len(h.Models) == 0 {
				return fmt.Errorf("backend %s has no models installed", cfg.Backend.Provider)
			}

			saved := ""
			if st, err := openStore(cfg); err == nil {
				saved, _ = st.SavedModel()
				st.Close()
			}

			if len(h.Details) == 0 {
				for _, name := range h.Models {
					fmt.Println(name)
				}
				return nil
			}
			for _, d := range h.Details {
				marker := " "
				if d.Name == saved {
					marker = "*"
				}
				if d.ParamSize != "" {
					fmt.Printf("%s %s (%s)\n", marker, d.Name, d.ParamSize)
				} else {
					fmt.Printf("%s %s\n", marker, d.Name)
				}
			}
			return nil
		},
	}
}
