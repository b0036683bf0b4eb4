// Package ports lists the serial ports attached to the machine.
package ports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"go.bug.st/serial/enumerator"

	"arduscan/internal/model"
)

// ErrUnavailable means no enumeration capability exists on this host.
var ErrUnavailable = errors.New("port enumeration unavailable")

// Enumerator returns the serial ports currently attached.
type Enumerator interface {
	Ports(ctx context.Context) ([]model.ComPort, error)
}

// SerialEnumerator lists ports through go.bug.st/serial.
type SerialEnumerator struct {
	list func() ([]*enumerator.PortDetails, error)
}

// NewSerialEnumerator creates an enumerator backed by the platform port list.
func NewSerialEnumerator() *SerialEnumerator {
	return &SerialEnumerator{list: enumerator.GetDetailedPortsList}
}

func (e *SerialEnumerator) Ports(ctx context.Context) ([]model.ComPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	details, err := e.list()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	ports := make([]model.ComPort, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		ports = append(ports, FromDetails(d))
	}
	return ports, nil
}

// FromDetails converts enumerator details into a ComPort. Unparseable or
// missing hex identifiers become zero.
func FromDetails(d *enumerator.PortDetails) model.ComPort {
	p := model.ComPort{
		Device:       d.Name,
		Description:  d.Product,
		SerialNumber: d.SerialNumber,
		Product:      d.Product,
		HWID:         "n/a",
	}
	if p.Description == "" {
		p.Description = "n/a"
	}
	if !d.IsUSB {
		return p
	}

	p.VID = parseHexID(d.VID)
	p.PID = parseHexID(d.PID)
	p.HWID = fmt.Sprintf("USB VID:PID=%s:%s", strings.ToUpper(d.VID), strings.ToUpper(d.PID))
	if d.SerialNumber != "" {
		p.HWID += " SER=" + d.SerialNumber
	}
	return p
}

func parseHexID(s string) uint16 {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// Static returns a fixed list of ports.
type Static []model.ComPort

func (s Static) Ports(ctx context.Context) ([]model.ComPort, error) {
	return slices.Clone(s), ctx.Err()
}

// Disabled never reports any port.
type Disabled struct{}

func (Disabled) Ports(context.Context) ([]model.ComPort, error) {
	return nil, ErrUnavailable
}

// DevScanner finds serial devices by name under a device directory.
// It has no USB identifiers and is only used when detailed listing fails.
type DevScanner struct {
	Dir      string
	Matchers []string
}

// NewDevScanner returns a scanner for the usual Unix serial device names.
func NewDevScanner() *DevScanner {
	return &DevScanner{
		Dir:      "/dev",
		Matchers: []string{"tty.usb", "cu.usb", "ttyACM", "ttyUSB"},
	}
}

func (s *DevScanner) Ports(ctx context.Context) ([]model.ComPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Dir, err)
	}

	var ports []model.ComPort
	for _, e := range entries {
		for _, m := range s.Matchers {
			if strings.Contains(e.Name(), m) {
				ports = append(ports, model.ComPort{
					Device:      filepath.Join(s.Dir, e.Name()),
					Description: "n/a",
					HWID:        "n/a",
				})
				break
			}
		}
	}
	return ports, nil
}

// Fallback tries Primary and uses Secondary when Primary fails.
type Fallback struct {
	Primary   Enumerator
	Secondary Enumerator
}

func (f Fallback) Ports(ctx context.Context) ([]model.ComPort, error) {
	ports, err := f.Primary.Ports(ctx)
	if err == nil || f.Secondary == nil {
		return ports, err
	}
	alt, altErr := f.Secondary.Ports(ctx)
	if altErr != nil {
		return nil, errors.Join(err, altErr)
	}
	return alt, nil
}

// Collect runs e and degrades any failure to zero ports. The boolean reports
// whether enumeration actually ran.
func Collect(ctx context.Context, e Enumerator, logger *log.Logger) ([]model.ComPort, bool) {
	if logger == nil {
		logger = log.Default()
	}
	if e == nil {
		return nil, false
	}
	ports, err := e.Ports(ctx)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			logger.Debug("port enumeration disabled")
		} else {
			logger.Warn("port enumeration failed, continuing without ports", "err", err)
		}
		return nil, false
	}
	logger.Debug("ports enumerated", "count", len(ports))
	return ports, true
}
