package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/knitlab/knitscope/knit"
)

// ErrEmptySnapshot indicates a snapshot document with no content at all.
var ErrEmptySnapshot = errors.New("empty snapshot")

// Parse decodes and validates a snapshot document. Structural defects such
// as a blank class name or an unknown component type reject the whole
// document; an absent formatVersion is read as the current version.
func Parse(data []byte) (*Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySnapshot
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.FormatVersion == 0 {
		snap.FormatVersion = FormatVersion
	}
	if snap.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot format version: %d", snap.FormatVersion)
	}
	if err := validateComponents(snap.Components); err != nil {
		return nil, err
	}
	digest, err := knit.Fingerprint(data)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint snapshot: %w", err)
	}
	snap.Checksum = fmt.Sprintf("%016x", digest)
	return snap, nil
}

// Marshal encodes a snapshot back to its wire form.
func Marshal(snap *Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, ErrEmptySnapshot
	}
	clone := *snap
	if clone.FormatVersion == 0 {
		clone.FormatVersion = FormatVersion
	}
	return json.MarshalIndent(&clone, "", "  ")
}

func validateComponents(components []knit.Component) error {
	for i := range components {
		component := &components[i]
		if component.Name == "" {
			return fmt.Errorf("component %d: missing class name", i)
		}
		if component.Type == "" {
			component.Type = knit.TypeComponent
		}
		if !component.Type.Known() {
			return fmt.Errorf("component %v: unknown component type %q", component.ID(), component.Type)
		}
		for j := range component.Dependencies {
			if component.Dependencies[j].TargetType == "" {
				return fmt.Errorf("component %v: dependency %d missing target type", component.ID(), j)
			}
		}
		for j := range component.Providers {
			provider := &component.Providers[j]
			if provider.ProvidesType == "" && provider.ReturnType == "" {
				return fmt.Errorf("component %v: provider %v missing provided type", component.ID(), provider.Method)
			}
		}
	}
	return nil
}
