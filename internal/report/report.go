// Package report renders an Inventory as a plain-text diagnostic report.
package report

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/model"
	"arduscan/internal/scan"
)

const ruleWidth = 72

// SystemInfo is the host summary printed at the top of the report.
type SystemInfo struct {
	User       string
	OS         string
	Arch       string
	GoVersion  string
	Executable string
}

// CurrentSystem describes the running host.
func CurrentSystem() SystemInfo {
	info := SystemInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
	}
	if u, err := user.Current(); err == nil {
		info.User = filepath.Base(u.Username)
	}
	if exe, err := os.Executable(); err == nil {
		info.Executable = exe
	}
	return info
}

// Options tune report output.
type Options struct {
	System SystemInfo
	// Verbose adds a short preview of each board-matched header.
	Verbose bool
	// PreviewLines bounds the verbose preview.
	PreviewLines int
}

// Generate renders the full report: banner, system summary, cores,
// toolchains, serial ports, header groups and suggested flags.
func Generate(inv *model.Inventory, cat *catalog.Catalog, ident *board.Identifier, opts Options) string {
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = 8
	}
	var b strings.Builder

	b.WriteString(Banner(inv.Banner))
	b.WriteString("\n")

	writeSystem(&b, inv, opts.System)

	for _, kr := range inv.Kinds {
		if kr.Kind != model.KindCores && kr.Kind != model.KindToolchains {
			continue
		}
		spec, _ := cat.Spec(kr.Kind)
		writeKind(&b, spec, kr, opts)
		if kr.Kind == model.KindToolchains && len(kr.Records) > 0 {
			b.WriteString("Best guess for default toolchain include dir:\n")
			fmt.Fprintf(&b, "  %s\n\n", kr.Records[0].IncludeDir)
		}
	}

	writePorts(&b, inv, ident)

	for _, kr := range inv.Kinds {
		if kr.Kind == model.KindCores || kr.Kind == model.KindToolchains {
			continue
		}
		spec, _ := cat.Spec(kr.Kind)
		writeKind(&b, spec, kr, opts)
	}

	writeFlags(&b, inv, cat)

	return b.String()
}

func section(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "%s\n%s\n%s\n", rule, title, rule)
}

func writeSystem(b *strings.Builder, inv *model.Inventory, sys SystemInfo) {
	section(b, "System")
	fmt.Fprintf(b, "User        : %s\n", sys.User)
	fmt.Fprintf(b, "OS          : %s\n", sys.OS)
	fmt.Fprintf(b, "Go          : %s\n", sys.GoVersion)
	fmt.Fprintf(b, "Arch        : %s\n", sys.Arch)
	fmt.Fprintf(b, "ArduinoDir  : %s\n", inv.BaseDir)
	fmt.Fprintf(b, "Executable  : %s\n", sys.Executable)
	b.WriteString("\n")
}

// Ordered returns the records of kr in emitted order: the board match first,
// then the remainder.
func Ordered(kr model.KindResult) []model.HeaderRecord {
	if kr.Match.Matched == nil {
		return kr.Records
	}
	out := make([]model.HeaderRecord, 0, len(kr.Records))
	out = append(out, *kr.Match.Matched)
	return append(out, kr.Match.Remainder...)
}

func writeKind(b *strings.Builder, spec catalog.KindSpec, kr model.KindResult, opts Options) {
	section(b, spec.Title)
	fmt.Fprintf(b, "%s: %d\n\n", spec.DiscoveredLabel, len(kr.Records))

	if len(kr.Records) == 0 {
		fmt.Fprintf(b, "%s\n\n", spec.NoneFound)
		return
	}

	for i, rec := range Ordered(kr) {
		matched := i == 0 && kr.Match.Matched != nil
		suffix := ""
		if matched {
			suffix = " [MATCHED TO DETECTED BOARD]"
		}
		fmt.Fprintf(b, "[%s #%d]%s\n", spec.ItemLabel, i+1, suffix)
		fmt.Fprintf(b, "  %s full path:\n    %s\n", spec.HeaderDesc, rec.HeaderPath)
		fmt.Fprintf(b, "  Include directory (-I):\n    %s\n", rec.IncludeDir)
		if rec.CompilerPath != "" {
			fmt.Fprintf(b, "  Compiler path:\n    %s\n", rec.CompilerPath)
		}
		if statuses, ok := kr.Friends[rec.HeaderPath]; ok {
			writeFriends(b, spec, rec, statuses)
		}
		if matched && opts.Verbose {
			writePreview(b, rec.HeaderPath, opts.PreviewLines)
		}
		b.WriteString("\n")
	}
}

func writeFriends(b *strings.Builder, spec catalog.KindSpec, rec model.HeaderRecord, statuses []model.FriendStatus) {
	root := scan.SearchRoot(rec.IncludeDir, spec.FriendRootUp)
	if root == "" {
		root = rec.IncludeDir
	}
	fmt.Fprintf(b, "  %s (present / elsewhere / missing):\n", spec.FriendsLabel)
	for _, st := range statuses {
		switch st.State() {
		case model.FriendMissing:
			fmt.Fprintf(b, "    %s %s (not found under %s)\n", model.TagMissing, st.Name, root)
		case model.FriendPresent:
			fmt.Fprintf(b, "    %s  %s -> %s\n", model.TagPresent, st.Name, st.FoundPaths[0])
		case model.FriendAlternate:
			fmt.Fprintf(b, "    %s %s -> %s\n", model.TagAlternate, st.Name, st.FoundPaths[0])
		}
	}
}

func writePreview(b *strings.Builder, path string, lines int) {
	preview := model.GetHeaderPreview(path, lines)
	b.WriteString("  Preview:\n")
	if preview.ErrorMsg != "" {
		fmt.Fprintf(b, "    (%s)\n", preview.ErrorMsg)
		return
	}
	for _, line := range preview.Lines {
		fmt.Fprintf(b, "    | %s\n", line)
	}
	if preview.Truncated {
		b.WriteString("    | ...\n")
	}
}

func writePorts(b *strings.Builder, inv *model.Inventory, ident *board.Identifier) {
	section(b, "Serial / COM ports")
	if !inv.PortsAvailable {
		b.WriteString("Serial port enumeration is unavailable; COM port details skipped.\n\n")
		return
	}
	fmt.Fprintf(b, "Detected COM ports: %d\n\n", len(inv.Ports))
	if len(inv.Ports) == 0 {
		b.WriteString("No COM ports found.\n\n")
		return
	}

	for i, p := range inv.Ports {
		marker := ""
		if inv.Detected != nil && inv.Detected.Device == p.Device {
			marker = " " + model.IconMatched
		}
		fmt.Fprintf(b, "[Port #%d] %s%s\n", i+1, p.Device, marker)
		fmt.Fprintf(b, "  Description : %s\n", p.Description)
		fmt.Fprintf(b, "  HWID        : %s\n", p.HWID)
		fmt.Fprintf(b, "  VID/PID     : %s\n", p.IDString())
		if p.Manufacturer != "" || p.Product != "" {
			b.WriteString("  USB strings :\n")
			if p.Manufacturer != "" {
				fmt.Fprintf(b, "    Manufacturer : %s\n", p.Manufacturer)
			}
			if p.Product != "" {
				fmt.Fprintf(b, "    Product      : %s\n", p.Product)
			}
		}
		fmt.Fprintf(b, "  Board guess : %s\n\n", ident.Describe(p.VID, p.PID))
	}
}

func writeFlags(b *strings.Builder, inv *model.Inventory, cat *catalog.Catalog) {
	section(b, "Suggested -I include flags")
	for _, kr := range inv.Kinds {
		spec, _ := cat.Spec(kr.Kind)
		fmt.Fprintf(b, "%s include paths:\n", spec.FlagsLabel)
		if len(kr.Flags.IncludeDirs) == 0 {
			b.WriteString("  (none found)\n")
		}
		for _, d := range kr.Flags.IncludeDirs {
			fmt.Fprintf(b, "  -I\"%s\"\n", d)
		}
		if kr.Flags.Compiler != "" {
			fmt.Fprintf(b, "  Compiler: \"%s\"\n", kr.Flags.Compiler)
		}
		if len(kr.Flags.ExtraDirs) > 0 {
			fmt.Fprintf(b, "\nExtra %s friend include paths:\n", spec.FlagsLabel)
			for _, d := range kr.Flags.ExtraDirs {
				fmt.Fprintf(b, "  -I\"%s\"\n", d)
			}
		}
		b.WriteString("\n")
	}
}
