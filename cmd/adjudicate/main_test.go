package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/freeeve/diplomacy-core/diplomacy"
)

func TestRunResolvesAMovementPhase(t *testing.T) {
	bs := diplomacy.NewInitialState()
	stateData, err := json.Marshal(bs)
	if err != nil {
		t.Fatalf("marshal initial state: %v", err)
	}

	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	ordersPath := filepath.Join(dir, "orders.yaml")
	outputPath := filepath.Join(dir, "result.json")

	if err := os.WriteFile(statePath, stateData, 0644); err != nil {
		t.Fatalf("write state: %v", err)
	}
	orderYAML := []byte(`
orders:
  - unit: "A par"
    action: hold
`)
	if err := os.WriteFile(ordersPath, orderYAML, 0644); err != nil {
		t.Fatalf("write orders: %v", err)
	}

	if err := run(context.Background(), statePath, ordersPath, outputPath, "movement", "", false, false); err != nil {
		t.Fatalf("run: %v", err)
	}

	resultData, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var result diplomacy.BoardState
	if err := json.Unmarshal(resultData, &result); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if result.Season != diplomacy.SeasonFall {
		t.Errorf("expected Spring movement with no dislodgements to advance to Fall, got %s", result.Season)
	}
	if result.UnitAt("par") == nil {
		t.Error("Paris army should still be present after holding")
	}
}

func TestRunRejectsUnknownPhaseKind(t *testing.T) {
	bs := diplomacy.NewInitialState()
	stateData, _ := json.Marshal(bs)

	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	ordersPath := filepath.Join(dir, "orders.yaml")
	os.WriteFile(statePath, stateData, 0644)
	os.WriteFile(ordersPath, []byte("orders: []"), 0644)

	err := run(context.Background(), statePath, ordersPath, "", "nonsense", "", false, false)
	if err == nil {
		t.Fatal("expected an error for an unknown phase kind")
	}
}

func TestYearOffsetOrdersPhasesWithinAYear(t *testing.T) {
	if yearOffset(diplomacy.SeasonSpring) >= yearOffset(diplomacy.SeasonFall) {
		t.Error("Spring should sort before Fall")
	}
	if yearOffset(diplomacy.SeasonFall) >= yearOffset(diplomacy.SeasonRetreat) {
		t.Error("Fall should sort before Retreat")
	}
	if yearOffset(diplomacy.SeasonRetreat) >= yearOffset(diplomacy.SeasonWinter) {
		t.Error("Retreat should sort before Winter")
	}
}
