// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactlp/pip"
)

const boxFile = `
kind: mip
dimensions: [x, y]
integers: [y]
objective: {coefficients: {x: 1, y: 1}}
direction: maximize
constraints:
  - {coefficients: {x: 1}, relation: ">="}
  - {coefficients: {x: 1}, constant: -3, relation: "<="}
  - {coefficients: {y: 1}, relation: ">="}
  - {coefficients: {y: 2}, constant: -7, relation: "<="}
`

const floorFile = `
kind: pip
dimensions: [x, n]
parameters: [n]
constraints:
  - {coefficients: {x: 1, n: -1}, relation: ">="}
`

const scenarioFile = `
kind: pip
dimensions: [i, j, n, m]
parameters: [n, m]
constraints:
  - {coefficients: {i: 2, j: 3}, constant: -8, relation: ">="}
  - {coefficients: {i: 4, j: -1}, constant: -4, relation: ">="}
  - {coefficients: {i: 1, n: -1}, relation: "<="}
  - {coefficients: {j: 1, m: -1}, relation: "<="}
`

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewCommandRoot(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestMIPCommand(t *testing.T) {
	path := writeFile(t, "box.yaml", boxFile)
	out, err := execute(t, "mip", "-f", path, "--pricing", "textbook")
	require.NoError(t, err)
	assert.Equal(t, "status: OPTIMIZED\nx = 3\ny = 3\nobjective = 6\n", out)
}

func TestMIPCommand_DumpAndMetrics(t *testing.T) {
	path := writeFile(t, "box.yaml", boxFile)
	out, err := execute(t, "mip", "-f", path, "--dump", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "exactlp/mip/v1")
	assert.Contains(t, out, "exactlp_pivots_total")
}

func TestPIPCommand_Tree(t *testing.T) {
	path := writeFile(t, "floor.yaml", floorFile)
	out, err := execute(t, "pip", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "if -n >= 0 then\n  {x = 0}\nelse\n  {x = n}\n", out)
}

func TestPIPCommand_At(t *testing.T) {
	path := writeFile(t, "scenario.yaml", scenarioFile)
	for _, cut := range []string{"first", "deepest", "all"} {
		out, err := execute(t, "pip", "-f", path, "--at", "n=2,m=2", "--cutting-strategy", cut)
		require.NoError(t, err, cut)
		assert.Equal(t, "{i = 2, j = 2}\n", out, cut)
	}

	out, err := execute(t, "pip", "-f", path, "--at", "n=0,m=0")
	require.NoError(t, err)
	assert.Equal(t, "_|_\n", out)
}

func TestPIPCommand_ConfigFile(t *testing.T) {
	path := writeFile(t, "scenario.yaml", scenarioFile)
	cfg := writeFile(t, "exactlp.yaml", "cutting_strategy: all\npivot_row_strategy: max-column\n")
	out, err := execute(t, "pip", "-f", path, "--config", cfg, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "cutting: all")
	assert.Contains(t, out, "pivotRow: max-column")
	assert.Contains(t, out, "exactlp/pip/v1")
}

func TestCommand_Errors(t *testing.T) {
	box := writeFile(t, "box.yaml", boxFile)
	scenario := writeFile(t, "scenario.yaml", scenarioFile)

	_, err := execute(t, "mip")
	assert.Error(t, err)

	_, err = execute(t, "pip", "-f", box)
	assert.Error(t, err)

	_, err = execute(t, "pip", "-f", scenario, "--at", "n=1")
	assert.Error(t, err)

	_, err = execute(t, "pip", "-f", scenario, "--at", "n=-1,m=2")
	assert.ErrorIs(t, err, pip.ErrNegativeParameter)

	_, err = execute(t, "mip", "-f", box, "--pricing", "dantzig")
	assert.Error(t, err)

	_, err = execute(t, "mip", "-f", box, "extra")
	assert.Error(t, err)
}
