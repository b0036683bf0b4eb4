package model

import "fmt"

// ComPort describes one serial port reported by the platform enumerator.
// VID and PID are zero when the port does not expose USB identifiers.
type ComPort struct {
	Device       string `json:"device" yaml:"device"`
	Description  string `json:"description" yaml:"description"`
	HWID         string `json:"hwid" yaml:"hwid"`
	VID          uint16 `json:"vid,omitempty" yaml:"vid,omitempty"`
	PID          uint16 `json:"pid,omitempty" yaml:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Product      string `json:"product,omitempty" yaml:"product,omitempty"`
}

// HasIDs reports whether both USB identifiers are known.
func (p ComPort) HasIDs() bool {
	return p.VID != 0 && p.PID != 0
}

// IDString formats the pair as 0xVVVV / 0xPPPP.
func (p ComPort) IDString() string {
	if !p.HasIDs() {
		return "(not available)"
	}
	return fmt.Sprintf("0x%04X / 0x%04X", p.VID, p.PID)
}

// BoardIdentity is the canonical identity derived from a VID/PID pair.
type BoardIdentity struct {
	ShortName     string   `json:"short_name" yaml:"short_name"`
	Description   string   `json:"description" yaml:"description"`
	VariantTokens []string `json:"variant_tokens,omitempty" yaml:"variant_tokens,omitempty"`
}
