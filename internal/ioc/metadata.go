// Package ioc loads IOC metadata from the whatrecord feed.
package ioc

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata is one IOC record from iocs.json. Resolution reads only
// Name, Script, and Binary; the remaining fields are carried through for
// reporting.
type Metadata struct {
	// Name is the IOC instance name, used as the aggregation key.
	Name string `json:"name"`

	// Alias is an optional human-friendly name.
	Alias string `json:"alias"`

	// Script is the boot command path.
	Script string `json:"script"`

	// Binary is the executable path; empty when whatrecord recorded none.
	Binary string `json:"binary"`

	// BaseVersion is the base version whatrecord detected, if any.
	BaseVersion string `json:"base_version"`

	// Dir is the IOC startup directory.
	Dir string `json:"dir"`

	// Host is the host the IOC runs on.
	Host string `json:"host"`

	// Port is the procServ port.
	Port int `json:"port"`
}

// Load reads all IOC records from the given JSON file.
func Load(filename string) ([]Metadata, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading IOC feed: %w", err)
	}
	var iocs []Metadata
	if err := json.Unmarshal(contents, &iocs); err != nil {
		return nil, fmt.Errorf("decoding IOC feed %s: %w", filename, err)
	}
	return iocs, nil
}
