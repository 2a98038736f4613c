package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// IntegrationTestSpec is one case: a JSON AST fed to naturec, checked
// against substrings that must appear in the generated C, in order, or
// not at all.
type IntegrationTestSpec struct {
	Name        string   `yaml:"name"`
	Input       string   `yaml:"input"`
	Expect      []string `yaml:"expect"`
	ExpectOrder []string `yaml:"expect_order"`
	ExpectNot   []string `yaml:"expect_not"`
	Skip        string   `yaml:"skip,omitempty"`
}

type IntegrationTestFile struct {
	Tests []IntegrationTestSpec `yaml:"tests"`
}

func TestIntegrationYAML(t *testing.T) {
	data, err := os.ReadFile("testdata/integration.yaml")
	if err != nil {
		t.Fatalf("integration.yaml not found: %v", err)
	}

	var testFile IntegrationTestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse integration.yaml: %v", err)
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}
			resetFlags()

			tmpDir := t.TempDir()
			inputPath := filepath.Join(tmpDir, "program.json")
			if err := os.WriteFile(inputPath, []byte(tc.Input), 0644); err != nil {
				t.Fatalf("failed to write test input: %v", err)
			}

			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{inputPath})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("naturec failed: %v\nstderr: %s", err, errOut.String())
			}

			generated, err := os.ReadFile(filepath.Join(tmpDir, "program.c"))
			if err != nil {
				t.Fatalf("expected generated C file: %v", err)
			}
			output := string(generated)

			for _, exp := range tc.Expect {
				if !strings.Contains(output, exp) {
					t.Errorf("expected output to contain %q\ngot:\n%s", exp, output)
				}
			}

			if len(tc.ExpectOrder) > 0 {
				lastIdx := -1
				for _, exp := range tc.ExpectOrder {
					idx := strings.Index(output, exp)
					if idx == -1 {
						t.Errorf("expected output to contain %q for order check\ngot:\n%s", exp, output)
						continue
					}
					if idx <= lastIdx {
						t.Errorf("expected %q to appear after the previous pattern\ngot:\n%s", exp, output)
					}
					lastIdx = idx
				}
			}

			for _, exp := range tc.ExpectNot {
				if strings.Contains(output, exp) {
					t.Errorf("expected output NOT to contain %q\ngot:\n%s", exp, output)
				}
			}
		})
	}
}
