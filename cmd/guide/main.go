// Command guide is the PokeStory Guide terminal client.
//
// Usage:
//
//	pokestory-guide browse --preview
//	pokestory-guide regions
//	pokestory-guide trainers --region kanto --role gym
//	pokestory-guide team --trainer kanto-brock-rb --index 0 -o yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/albapepper/pokestory-guide/internal/config"
	"github.com/albapepper/pokestory-guide/internal/guide"
	"github.com/albapepper/pokestory-guide/internal/imgsrc"
	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/source"
	"github.com/albapepper/pokestory-guide/internal/store"
	"github.com/albapepper/pokestory-guide/internal/tui"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	preview bool
	output  string
}

func rootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "pokestory-guide",
		Short:         "Browse walkthrough trainers, teams and counters",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&g.preview, "preview", false, "Use the embedded preview catalog instead of the database")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "text", "Output format: text, json or yaml")

	root.AddCommand(browseCmd(&g))
	root.AddCommand(regionsCmd(&g))
	root.AddCommand(trainersCmd(&g))
	root.AddCommand(teamCmd(&g))
	return root
}

// runWithStore loads config, opens the catalog and runs fn.
func runWithStore(g *globalFlags, fn func(ctx context.Context, cfg *config.Config, s store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if g.preview {
		os.Setenv("PREVIEW_MODE", "true")
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	src, err := source.Open(ctx, cfg, nil, logger)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer src.Close()

	return fn(ctx, cfg, src.Store)
}

// --------------------------------------------------------------------------
// browse command
// --------------------------------------------------------------------------

func browseCmd(g *globalFlags) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal; logs would corrupt it.
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))

			return runWithStore(g, func(ctx context.Context, cfg *config.Config, s store.Store) error {
				start := cfg.DefaultRegion
				if region != "" {
					r, err := model.ParseRegionID(region)
					if err != nil {
						return err
					}
					start = r
				}

				m := tui.New(ctx,
					guide.NewLoader(s, logger),
					imgsrc.NewProber(nil, cfg.ImageProbeTimeout, logger).WithAllowedHosts(cfg.ImageAllowedHosts),
					nil, start)
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
				return err
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Starting region (default DEFAULT_REGION)")
	return cmd
}

// --------------------------------------------------------------------------
// regions command
// --------------------------------------------------------------------------

func regionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(g, func(ctx context.Context, _ *config.Config, s store.Store) error {
				regions, err := s.Regions(ctx)
				if err != nil {
					return err
				}
				return emit(cmd.OutOrStdout(), g.output, regions, func(w io.Writer) {
					for _, r := range regions {
						fmt.Fprintf(w, "%-8s %s\n", r.ID, r.Name)
					}
				})
			})
		},
	}
}

// --------------------------------------------------------------------------
// trainers command
// --------------------------------------------------------------------------

func trainersCmd(g *globalFlags) *cobra.Command {
	var region, role string
	cmd := &cobra.Command{
		Use:   "trainers",
		Short: "List a region's trainers by role",
		RunE: func(cmd *cobra.Command, args []string) error {
			regionID, err := model.ParseRegionID(region)
			if err != nil {
				return err
			}
			var roleID model.Role
			if role != "" {
				if roleID, err = model.ParseRole(role); err != nil {
					return err
				}
			}

			return runWithStore(g, func(ctx context.Context, _ *config.Config, s store.Store) error {
				var trainers []model.Trainer
				if roleID == "" {
					trainers, err = s.TrainersByRegion(ctx, regionID)
				} else {
					trainers, err = s.TrainersByRole(ctx, regionID, roleID)
				}
				if err != nil {
					return err
				}

				buckets := guide.Buckets(trainers)
				return emit(cmd.OutOrStdout(), g.output, buckets, func(w io.Writer) {
					if len(trainers) == 0 {
						fmt.Fprintln(w, guide.MsgNoTrainers)
						return
					}
					for _, b := range buckets {
						fmt.Fprintln(w, b.Title)
						for _, t := range b.Trainers {
							line := "  " + t.ID + "  " + t.DisplayName
							if t.Role == model.RoleGym && t.BadgeNumber != nil {
								line += fmt.Sprintf("  Badge #%d", *t.BadgeNumber)
							}
							if t.Location != "" {
								line += "  (" + t.Location + ")"
							}
							fmt.Fprintln(w, line)
						}
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", string(model.Kanto), "Region ID")
	cmd.Flags().StringVar(&role, "role", "", "Only this role: gym, elite4, champion or rival")
	return cmd
}

// --------------------------------------------------------------------------
// team command
// --------------------------------------------------------------------------

func teamCmd(g *globalFlags) *cobra.Command {
	var region, trainerID string
	var index int
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show a trainer's team with party and counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(g, func(ctx context.Context, cfg *config.Config, s store.Store) error {
				start := cfg.DefaultRegion
				if region != "" {
					r, err := model.ParseRegionID(region)
					if err != nil {
						return err
					}
					start = r
				}

				st, err := walkToTeam(ctx, guide.NewBrowser(guide.NewLoader(s, logger), start, nil, logger), trainerID, index)
				if err != nil {
					return err
				}

				d := guide.Render(st).Detail
				if len(st.Teams) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), d.Message)
					return nil
				}
				detail := model.TeamWithParty{TrainerTeam: *st.Team(), Party: st.Party, Counters: st.Counters}
				return emit(cmd.OutOrStdout(), g.output, detail, func(w io.Writer) {
					printTeam(w, d)
				})
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Region the trainer belongs to (default DEFAULT_REGION)")
	cmd.Flags().StringVar(&trainerID, "trainer", "", "Trainer ID")
	cmd.Flags().IntVar(&index, "index", 0, "Team index (0-based)")
	_ = cmd.MarkFlagRequired("trainer")
	return cmd
}

// walkToTeam drives a browsing session through trainer and team selection
// and returns the settled state. The session is closed on return.
func walkToTeam(ctx context.Context, b *guide.Browser, trainerID string, index int) (guide.State, error) {
	defer b.Close()

	st, err := b.WaitIdle(ctx)
	if err != nil {
		return st, err
	}
	if st.TrainersErr != nil {
		return st, st.TrainersErr
	}

	if _, err := b.SelectTrainer(trainerID); err != nil {
		return st, err
	}
	if st, err = b.WaitIdle(ctx); err != nil {
		return st, err
	}
	if st.TeamsErr != nil {
		return st, st.TeamsErr
	}
	if len(st.Teams) == 0 {
		return st, nil
	}

	// Teams arrive with index 0 already selected.
	if index != st.TeamIndex {
		if _, err := b.SelectTeam(index); err != nil {
			return st, err
		}
		if st, err = b.WaitIdle(ctx); err != nil {
			return st, err
		}
	}
	return st, st.DetailErr
}

func printTeam(w io.Writer, d *guide.TeamDetail) {
	fmt.Fprintln(w, d.Trainer)
	fmt.Fprintln(w, d.Info)
	if d.Prerequisites != "" {
		fmt.Fprintln(w, d.Prerequisites)
	}
	fmt.Fprintln(w)

	tabs := make([]string, len(d.Tabs))
	for i, label := range d.Tabs {
		if i == d.Selected {
			label = "[" + label + "]"
		}
		tabs[i] = label
	}
	fmt.Fprintln(w, strings.Join(tabs, " | "))
	fmt.Fprintln(w)

	if d.Message != "" {
		fmt.Fprintln(w, d.Message)
	}
	for _, p := range d.Party {
		fmt.Fprintf(w, "%s  %s", p.Heading, p.Name)
		if len(p.Types) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(p.Types, "/"))
		}
		fmt.Fprintln(w)
		if len(p.Moves) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(p.Moves, ", "))
		}
	}

	for _, tier := range d.Tiers {
		fmt.Fprintf(w, "\n%s\n", tier.Title)
		for _, c := range tier.Rows {
			fmt.Fprintf(w, "  %s  %s  %s\n", c.Name, c.Level, c.Obtain)
			if c.Rationale != "" {
				fmt.Fprintf(w, "    %s\n", c.Rationale)
			}
		}
	}
}

// emit writes v in the requested format; text uses the given printer.
func emit(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
