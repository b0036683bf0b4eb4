package model

import "path/filepath"

// Kind identifies a family of headers discovered during a scan.
type Kind string

const (
	KindCores        Kind = "cores"
	KindToolchains   Kind = "toolchains"
	KindPins         Kind = "pins_arduino"
	KindBSP          Kind = "bsp"
	KindFSPCommon    Kind = "fsp_common"
	KindBSPCfg       Kind = "bsp_cfg"
	KindHALData      Kind = "hal_data"
	KindCMSIS        Kind = "cmsis"
	KindRCGC         Kind = "r_cgc"
	KindRCGCCfg      Kind = "r_cgc_cfg"
	KindFSPModuleCfg Kind = "fsp_module_cfg"
)

// IncludeDirer is implemented by anything that resolves to a compiler include directory.
type IncludeDirer interface {
	IncludeDirectory() string
}

// HeaderRecord is a single discovered header file.
type HeaderRecord struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// HeaderPath is the full path to the primary header.
	HeaderPath string `json:"header_path" yaml:"header_path"`
	// IncludeDir is the parent directory of HeaderPath.
	IncludeDir string `json:"include_dir" yaml:"include_dir"`
	// CompilerPath is only set for toolchains with a discovered compiler.
	CompilerPath string `json:"compiler_path,omitempty" yaml:"compiler_path,omitempty"`
}

// NewHeaderRecord binds the include directory to the header's parent.
func NewHeaderRecord(kind Kind, headerPath string) HeaderRecord {
	return HeaderRecord{
		Kind:       kind,
		HeaderPath: headerPath,
		IncludeDir: filepath.Dir(headerPath),
	}
}

func (h HeaderRecord) IncludeDirectory() string {
	return h.IncludeDir
}
