// Command symbolpatch rewrites weak Go-runtime symbol references in a
// built kernel ELF to point at the kernel's own strong mazarin_* symbols.
//
// The freestanding build links against the real Go runtime, which still
// emits calls to a handful of runtime support symbols (the weak copies the
// linker resolves by default). This kernel supplies its own strong
// implementations under the mazarin_ prefix (see internal/cpu's
// go:linkname stubs) and this tool redirects the call sites after the
// fact, the same two-pass "scan assembly for .global symbols, then patch
// the ELF" shape as an ARM64 runtime patcher performing the equivalent
// fixup for bl-instruction call sites.
//
// Usage: symbolpatch <elf_file> <asm_dir>
package main

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <elf_file> <asm_dir>\n", os.Args[0])
		os.Exit(1)
	}

	elfPath := os.Args[1]
	asmDir := os.Args[2]

	replacements := findMazarinSymbols(asmDir)
	if len(replacements) == 0 {
		fmt.Println("No mazarin_* symbols found to patch")
		os.Exit(0)
	}

	fmt.Printf("Found %d symbol(s) to patch:\n", len(replacements))
	for _, name := range replacements {
		fmt.Printf("  runtime weak reference -> %s\n", name)
	}

	if err := patchRuntime(elfPath, replacements); err != nil {
		fmt.Fprintf(os.Stderr, "Error patching runtime: %v\n", err)
		os.Exit(1)
	}
}

// mazarinGlobalRe matches ".global mazarin_<name>" declarations in .s files.
var mazarinGlobalRe = regexp.MustCompile(`^\.global\s+(mazarin_[a-z0-9_]+)\b`)

// findMazarinSymbols scans asmDir for every strong mazarin_* symbol the
// kernel's hand-written assembly exports.
func findMazarinSymbols(asmDir string) []string {
	var symbols []string

	filepath.Walk(asmDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !strings.HasSuffix(path, ".s") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		for _, line := range strings.Split(string(content), "\n") {
			if m := mazarinGlobalRe.FindStringSubmatch(line); m != nil {
				symbols = append(symbols, m[1])
			}
		}
		return nil
	})

	return symbols
}

// patchRuntime redirects every call site targeting the weak runtime copy
// of each symbol in symbols to the kernel's strong mazarin_* definition.
func patchRuntime(elfPath string, symbols []string) error {
	file, err := elf.Open(elfPath)
	if err != nil {
		return fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer file.Close()

	data, err := os.ReadFile(elfPath)
	if err != nil {
		return fmt.Errorf("failed to read ELF file: %w", err)
	}

	var textSection *elf.Section
	for _, section := range file.Sections {
		if section.Name == ".text" {
			textSection = section
			break
		}
	}
	if textSection == nil {
		return fmt.Errorf("could not find .text section")
	}

	env := os.Environ()
	totalPatches := 0

	for _, name := range symbols {
		weakAddr, err := findSymbolAddress(elfPath, "runtime."+name, env, 't')
		if err != nil {
			fmt.Printf("  Warning: no weak symbol for %s: %v\n", name, err)
			continue
		}
		strongAddr, err := findSymbolAddress(elfPath, name, env, 'T')
		if err != nil {
			fmt.Printf("  Warning: no strong symbol for %s: %v\n", name, err)
			continue
		}

		callSites, err := findCallSites(elfPath, weakAddr, env)
		if err != nil {
			fmt.Printf("  Warning: could not find call sites for %s: %v\n", name, err)
			continue
		}

		for _, callAddr := range callSites {
			if patchCallSite(data, textSection, callAddr, weakAddr, strongAddr) {
				totalPatches++
			}
		}
	}

	if totalPatches == 0 {
		fmt.Println("No patches applied")
		return nil
	}

	if err := os.WriteFile(elfPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write patched file: %w", err)
	}
	fmt.Printf("Successfully patched %d call site(s)\n", totalPatches)
	return nil
}

func findSymbolAddress(elfPath, symbolName string, env []string, preferType byte) (uint32, error) {
	cmd := exec.Command("nm", elfPath)
	cmd.Env = env
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("nm failed: %w", err)
	}

	type match struct {
		addr uint32
		typ  byte
	}
	var matches []match

	for _, line := range strings.Split(string(output), "\n") {
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		name := strings.Join(parts[2:], " ")
		symType := parts[1]
		if name != symbolName || len(symType) == 0 {
			continue
		}
		if symType[0] != 'T' && symType[0] != 't' {
			continue
		}
		addr, err := parseHex32(parts[0])
		if err != nil {
			continue
		}
		matches = append(matches, match{addr, symType[0]})
	}

	if len(matches) == 0 {
		return 0, fmt.Errorf("symbol %s not found", symbolName)
	}
	for _, m := range matches {
		if m.typ == preferType {
			return m.addr, nil
		}
	}
	return matches[0].addr, nil
}

// findCallSites disassembles the binary and returns the address of every
// "call rel32" instruction (opcode 0xE8) whose target is targetAddr.
func findCallSites(elfPath string, targetAddr uint32, env []string) ([]uint32, error) {
	cmd := exec.Command("objdump", "-d", elfPath)
	cmd.Env = env
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("objdump failed: %w", err)
	}

	var callSites []uint32
	callRe := regexp.MustCompile(`^\s*([0-9a-f]+):\s+e8\s[0-9a-f ]+\s+call\s+([0-9a-f]+)`)

	for _, line := range strings.Split(string(output), "\n") {
		m := callRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		callAddr, err1 := parseHex32(m[1])
		target, err2 := parseHex32(m[2])
		if err1 == nil && err2 == nil && target == targetAddr {
			callSites = append(callSites, callAddr)
		}
	}

	return callSites, nil
}

// patchCallSite rewrites the rel32 operand of the 5-byte "call rel32"
// instruction at callVAddr so it targets newTarget instead of oldTarget.
func patchCallSite(data []byte, textSection *elf.Section, callVAddr, oldTarget, newTarget uint32) bool {
	fileOffset := int64(textSection.Offset) + int64(callVAddr) - int64(textSection.Addr)
	if fileOffset < 0 || fileOffset+5 > int64(len(data)) {
		fmt.Printf("  Warning: invalid file offset for call at 0x%x\n", callVAddr)
		return false
	}

	if data[fileOffset] != 0xE8 {
		fmt.Printf("  Warning: instruction at 0x%x is not a call rel32\n", callVAddr)
		return false
	}

	currentRel := int32(binary.LittleEndian.Uint32(data[fileOffset+1:]))
	currentTarget := uint32(int64(callVAddr) + 5 + int64(currentRel))
	if currentTarget != oldTarget {
		fmt.Printf("  Warning: call at 0x%x targets 0x%x, expected 0x%x\n", callVAddr, currentTarget, oldTarget)
	}

	newRel := int64(newTarget) - (int64(callVAddr) + 5)
	if newRel > 0x7fffffff || newRel < -0x80000000 {
		fmt.Printf("  Error: branch offset out of range for call at 0x%x\n", callVAddr)
		return false
	}

	binary.LittleEndian.PutUint32(data[fileOffset+1:], uint32(int32(newRel)))
	return true
}

func parseHex32(s string) (uint32, error) {
	var val uint64
	_, err := fmt.Sscanf(s, "%x", &val)
	return uint32(val), err
}
