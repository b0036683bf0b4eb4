package catalog

import "arduscan/internal/model"

var coreFriends = []string{
	"WString.h",
	"HardwareSerial.h",
	"Print.h",
	"Stream.h",
}

var clibFriends = []string{
	"stdlib.h",
	"stdio.h",
	"string.h",
	"stdint.h",
	"stdbool.h",
	"math.h",
	"ctype.h",
	"time.h",
	"limits.h",
	"float.h",
	"errno.h",
	"stddef.h",
	"signal.h",
}

// Default returns a freshly built catalog with the built-in tables.
func Default() *Catalog {
	return &Catalog{
		Kinds: []KindSpec{
			{
				Kind:            model.KindCores,
				Title:           "Arduino cores (Arduino.h and friends)",
				DiscoveredLabel: "Discovered cores",
				NoneFound:       "No Arduino cores (Arduino.h) found.",
				ItemLabel:       "Core",
				HeaderDesc:      "Arduino.h",
				FlagsLabel:      "Arduino core",
				Patterns:        []string{"Arduino.h"},
				Rule:            RuleCoreSegment,
				Friends:         coreFriends,
				FriendRootUp:    3,
				FriendsLabel:    "Core header friends",
			},
			{
				Kind:            model.KindToolchains,
				Title:           "Toolchain C library (stdlib.h and friends)",
				DiscoveredLabel: "Discovered toolchains",
				NoneFound:       "No toolchain C library headers (stdlib.h) found.",
				ItemLabel:       "Toolchain",
				HeaderDesc:      "stdlib.h",
				FlagsLabel:      "Toolchain C library",
				Patterns:        []string{"stdlib.h"},
				Rule:            RuleToolchain,
				Friends:         clibFriends,
				FriendRootUp:    2,
				FriendsLabel:    "C library header friends",
			},
			{
				Kind:            model.KindPins,
				Title:           "Variant pins (pins_arduino.h)",
				DiscoveredLabel: "Discovered pins_arduino.h headers",
				NoneFound:       "No pins_arduino.h headers found.",
				ItemLabel:       "Variant pins",
				HeaderDesc:      "pins_arduino.h",
				FlagsLabel:      "Variant pins (pins_arduino.h)",
				Patterns:        []string{"pins_arduino.h"},
			},
			{
				Kind:            model.KindBSP,
				Title:           "BSP API (bsp_api.h)",
				DiscoveredLabel: "Discovered BSP headers",
				NoneFound:       "No BSP API headers (bsp_api.h) found.",
				ItemLabel:       "BSP",
				HeaderDesc:      "bsp_api.h",
				FlagsLabel:      "BSP API",
				Patterns:        []string{"bsp_api.h"},
			},
			{
				Kind:            model.KindFSPCommon,
				Title:           "FSP Common API (fsp_common_api.h)",
				DiscoveredLabel: "Discovered FSP common headers",
				NoneFound:       "No FSP common API headers (fsp_common_api.h) found.",
				ItemLabel:       "FSP",
				HeaderDesc:      "fsp_common_api.h",
				FlagsLabel:      "FSP Common API",
				Patterns:        []string{"fsp_common_api.h"},
			},
			{
				Kind:            model.KindBSPCfg,
				Title:           "BSP Configuration (bsp_cfg.h)",
				DiscoveredLabel: "Discovered BSP config headers",
				NoneFound:       "No BSP config headers (bsp_cfg.h) found.",
				ItemLabel:       "BSP Config",
				HeaderDesc:      "bsp_cfg.h",
				FlagsLabel:      "BSP Configuration",
				Patterns:        []string{"bsp_cfg.h"},
			},
			{
				Kind:            model.KindHALData,
				Title:           "HAL Data (hal_data.h)",
				DiscoveredLabel: "Discovered HAL data headers",
				NoneFound:       "No HAL data headers (hal_data.h) found.",
				ItemLabel:       "HAL Data",
				HeaderDesc:      "hal_data.h",
				FlagsLabel:      "HAL Data",
				Patterns:        []string{"hal_data.h"},
			},
			{
				Kind:            model.KindCMSIS,
				Title:           "CMSIS Headers",
				DiscoveredLabel: "Discovered CMSIS headers",
				NoneFound:       "No CMSIS headers found.",
				ItemLabel:       "CMSIS",
				HeaderDesc:      "Header",
				FlagsLabel:      "CMSIS",
				Patterns: []string{
					"cmsis_device.h",
					"core_cm0.h",
					"core_cm3.h",
					"core_cm4.h",
					"core_cm7.h",
				},
			},
			{
				Kind:            model.KindRCGC,
				Title:           "R_CGC Headers",
				DiscoveredLabel: "Discovered R_CGC headers",
				NoneFound:       "No R_CGC headers (r_cgc.h) found.",
				ItemLabel:       "R_CGC",
				HeaderDesc:      "r_cgc.h",
				FlagsLabel:      "R_CGC",
				Patterns:        []string{"r_cgc.h"},
			},
			{
				Kind:            model.KindRCGCCfg,
				Title:           "R_CGC Configuration (r_cgc_cfg.h)",
				DiscoveredLabel: "Discovered R_CGC config headers",
				NoneFound:       "No R_CGC config headers (r_cgc_cfg.h) found.",
				ItemLabel:       "R_CGC Config",
				HeaderDesc:      "r_cgc_cfg.h",
				FlagsLabel:      "R_CGC Configuration",
				Patterns:        []string{"r_cgc_cfg.h"},
			},
			{
				Kind:            model.KindFSPModuleCfg,
				Title:           "FSP Module Configuration (r_*_cfg.h)",
				DiscoveredLabel: "Discovered FSP module config headers",
				NoneFound:       "No FSP module config headers (r_*_cfg.h) found.",
				ItemLabel:       "FSP Module Config",
				HeaderDesc:      "Config header",
				FlagsLabel:      "FSP Module Configuration",
				Patterns:        []string{"r_*_cfg.h"},
				// r_cgc_cfg.h has its own kind
				Exclude: []string{"r_cgc_cfg.h"},
			},
		},

		ToolchainTokens: []string{
			"gcc",
			"arm-none-eabi",
			"avr",
			"rx-elf",
			"xtensa",
			"riscv",
		},

		CompilerNames: []string{
			"arm-none-eabi-gcc",
			"arm-none-eabi-g++",
			"gcc",
			"g++",
			"cc",
			"c++",
		},

		Boards: Boards{
			Exact: map[VIDPID]BoardEntry{
				{0x2341, 0x0043}: {"Arduino Uno (ATmega16U2)", "UNO"},
				{0x2341, 0x0001}: {"Arduino Uno (old bootloader)", "UNO"},
				{0x2341, 0x0010}: {"Arduino Mega 2560", "MEGA"},
				{0x2341, 0x8036}: {"Arduino Leonardo / Micro", "LEONARDO"},
				{0x2341, 0x805A}: {"Arduino UNO R4 (family, best guess)", "UNO R4"},
				{0x2341, 0x0074}: {"Arduino R4 Family (UNO R4 WiFi/Minima or NANO R4)", "R4 FAMILY"},
				{0x2A03, 0x0043}: {"Arduino Uno (2A03 VID)", "UNO"},
				{0x1A86, 0x7523}: {"CH340/CH341 USB–Serial (clone/adapter)", ""},
				{0x10C4, 0xEA60}: {"Silicon Labs CP2102 USB–Serial", ""},
			},
			FirstParty: []uint16{0x2341, 0x2A03},
			Clones: map[uint16]BoardEntry{
				0x1A86: {"CH340-based Arduino/adapter", "CH340"},
				0x10C4: {"CP210x-based Arduino/adapter", "CP210X"},
			},
			Variants: map[string][]string{
				"UNO":       {"UNOWIFIR4"},
				"UNO R4":    {"UNOWIFIR4"},
				"NANO":      {"NANOR4"},
				"NANO R4":   {"NANOR4"},
				"MINIMA":    {"MINIMA"},
				"R4 FAMILY": {"NANOR4", "UNOWIFIR4", "MINIMA"},
			},
			NoIDs:             BoardEntry{"Unknown device (no VID/PID)", "SCAN"},
			Unmapped:          BoardEntry{"Unknown device (unmapped VID/PID)", "SCAN"},
			FirstPartyUnknown: BoardEntry{"Arduino (exact model unknown)", "ARDUINO"},
		},
	}
}
