// Command adjudicate resolves one phase of a Diplomacy game: it reads a
// board state JSON file and a YAML order file, runs the appropriate
// adjudicator, prints the resulting diagnostics, and writes the next
// board state.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/freeeve/diplomacy-core/diplomacy"
	"github.com/freeeve/diplomacy-core/internal/config"
	"github.com/freeeve/diplomacy-core/internal/logger"
	"github.com/freeeve/diplomacy-core/internal/metrics"
	"github.com/freeeve/diplomacy-core/internal/notify"
	"github.com/freeeve/diplomacy-core/internal/orders"
	"github.com/freeeve/diplomacy-core/internal/store"
)

func main() {
	var statePath, ordersPath, outputPath, phaseKind, gameID string
	var useStore, useNotify bool

	cmdRoot := &cobra.Command{
		Use:           "adjudicate",
		Short:         "resolve one phase of a Diplomacy game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), statePath, ordersPath, outputPath, phaseKind, gameID, useStore, useNotify)
		},
	}

	cmdRoot.Flags().StringVar(&statePath, "state", "", "path to the board state JSON file")
	cmdRoot.Flags().StringVar(&ordersPath, "orders", "", "path to the YAML order file")
	cmdRoot.Flags().StringVar(&outputPath, "output", "", "path to write the resulting board state (default: stdout)")
	cmdRoot.Flags().StringVar(&phaseKind, "phase", "movement", "phase kind to resolve: movement|retreat|build")
	cmdRoot.Flags().StringVar(&gameID, "game-id", "", "game identifier, required when --checkpoint or --notify is set")
	cmdRoot.Flags().BoolVar(&useStore, "checkpoint", false, "persist the resulting board state to the configured Postgres database")
	cmdRoot.Flags().BoolVar(&useNotify, "notify", false, "publish a phase-advance event to the configured Redis instance")
	_ = cmdRoot.MarkFlagRequired("state")
	_ = cmdRoot.MarkFlagRequired("orders")

	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, statePath, ordersPath, outputPath, phaseKind, gameID string, useStore, useNotify bool) error {
	ctx = logger.WithResolutionID(ctx, logger.NewResolutionID())
	log := logger.ForResolution(ctx)
	cfg := config.Load()
	m := diplomacy.StandardMap()

	stateData, err := os.ReadFile(statePath)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	var bs diplomacy.BoardState
	if err := json.Unmarshal(stateData, &bs); err != nil {
		return fmt.Errorf("parse state: %w", err)
	}

	orderData, err := os.ReadFile(ordersPath)
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}
	loader := orders.NewLoader(&bs, m)
	parsed, err := loader.Load(orderData)
	if err != nil {
		return err
	}
	for _, w := range loader.Warnings {
		log.Warn().Str("token", loader.Token.String()).Msg(w)
	}

	reg := prometheus.NewRegistry()
	met := metrics.New(reg)

	hasDislodgements := false
	switch phaseKind {
	case "movement":
		started := time.Now()
		diag := diplomacy.ResolveMovement(parsed.Orders, &bs, m)
		for _, e := range diag.IllegalOrders {
			log.Warn().Msg(e.Error())
		}
		met.ObserveMovement(time.Since(started), len(diag.Dislodged), diag.GuessCount)
		diplomacy.ApplyResolution(&bs, m, diag)
		hasDislodgements = len(diag.Dislodged) > 0
		for _, ro := range diag.Results {
			log.Info().Str("order", ro.Order.Describe()).Str("result", ro.Result.String()).Msg(diag.Outcome(ro.Order.Location))
		}

	case "retreat":
		started := time.Now()
		results := diplomacy.ResolveRetreats(parsed.Retreats, &bs, m)
		met.ObserveRetreat(time.Since(started))
		diplomacy.ApplyRetreats(&bs, results)
		for _, r := range results {
			log.Info().Str("order", r.Order.Location).Str("result", r.Result.String()).Msg("retreat resolved")
		}

	case "build":
		started := time.Now()
		results := diplomacy.ResolveBuildOrders(parsed.Builds, &bs, m)
		met.ObserveWinter(time.Since(started))
		diplomacy.ApplyBuildOrders(&bs, results)
		for _, r := range results {
			log.Info().Str("power", string(r.Order.Power)).Str("location", r.Order.Location).Str("result", r.Result.String()).Msg("build resolved")
		}

	default:
		return fmt.Errorf("unknown phase kind %q", phaseKind)
	}

	diplomacy.AdvancePhase(&bs, m, hasDislodgements)

	if useStore {
		if gameID == "" {
			return fmt.Errorf("--checkpoint requires --game-id")
		}
		s, err := store.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect checkpoint store: %w", err)
		}
		defer s.Close()
		phaseSeq := bs.Year*10 + yearOffset(bs.Season)
		if bs.Season == diplomacy.SeasonRetreat && bs.PreviousSeason != nil && *bs.PreviousSeason == diplomacy.SeasonSpring {
			phaseSeq = bs.Year*10 + yearOffset(diplomacy.SeasonSpring) + 1
		}
		if err := s.SaveCheckpoint(ctx, gameID, phaseSeq, &bs); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}

	if useNotify {
		if gameID == "" {
			return fmt.Errorf("--notify requires --game-id")
		}
		n, err := notify.NewNotifier(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect notifier: %w", err)
		}
		defer n.Close()
		over, _ := diplomacy.IsGameOver(&bs)
		event := notify.PhaseAdvanced{
			GameID:     gameID,
			Year:       bs.Year,
			Season:     string(bs.Season),
			NeedsOrder: !over,
		}
		if err := n.PublishPhaseAdvanced(ctx, event); err != nil {
			return fmt.Errorf("publish phase advance: %w", err)
		}
	}

	out, err := json.MarshalIndent(&bs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result state: %w", err)
	}
	if outputPath == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(outputPath, out, 0644)
}

// yearOffset orders checkpoints within a year by phase sequence. The slot
// between Spring and Fall is taken by a Retreat that follows Spring
// movement (see run); SeasonRetreat itself maps to the post-Fall Retreat.
func yearOffset(season diplomacy.Season) int {
	switch season {
	case diplomacy.SeasonSpring:
		return 0
	case diplomacy.SeasonFall:
		return 2
	case diplomacy.SeasonRetreat:
		return 3
	case diplomacy.SeasonWinter:
		return 4
	default:
		return 0
	}
}
