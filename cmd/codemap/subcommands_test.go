package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/killvxk/codemap/services/codemap/graph"
)

func writeUpdateTestProject(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "auth"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "utils"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "src", "auth", "login.ts"),
		[]byte("import { helper } from '../utils/helper';\nexport function login() { return helper(); }\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "src", "utils", "helper.ts"),
		[]byte("export function helper() { return 1; }\n"),
		0o644,
	))
}

func TestRunUpdateDetectsAddedFile(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	require.NoError(t, runScan(scanCmd, []string{dir}))

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "src", "utils", "extra.ts"),
		[]byte("export function extra() { return 2; }\n"),
		0o644,
	))

	updateExclude = nil
	require.NoError(t, runUpdate(updateCmd, []string{dir}))

	g, err := graph.LoadGraph(outputDirFor(dir))
	require.NoError(t, err)
	require.Equal(t, 3, g.Summary.TotalFiles)
}

func TestRunUpdateWithoutPriorScanFails(t *testing.T) {
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	updateExclude = nil
	require.Error(t, runUpdate(updateCmd, []string{dir}))
}

func TestRunQueryFindsSymbol(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	require.NoError(t, runScan(scanCmd, []string{dir}))

	queryDir = dir
	queryType = ""
	queryModule = false
	require.NoError(t, runQuery(queryCmd, []string{"login"}))
}

func TestRunQueryModuleNotFound(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	require.NoError(t, runScan(scanCmd, []string{dir}))

	queryDir = dir
	queryModule = true
	err := runQuery(queryCmd, []string{"nonexistent"})
	require.Error(t, err)
	queryModule = false
}

func TestRunImpactReportsDependants(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	require.NoError(t, runScan(scanCmd, []string{dir}))

	impactDir = dir
	impactDepth = 3
	require.NoError(t, runImpact(impactCmd, []string{"utils"}))
}

func TestRunSliceOverviewAndModule(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()
	writeUpdateTestProject(t, dir)
	require.NoError(t, runScan(scanCmd, []string{dir}))

	sliceDir = dir
	sliceWithDeps = false
	require.NoError(t, runSlice(sliceCmd, nil))
	require.NoError(t, runSlice(sliceCmd, []string{"auth"}))

	sliceWithDeps = true
	require.NoError(t, runSlice(sliceCmd, []string{"auth"}))
	sliceWithDeps = false

	require.Error(t, runSlice(sliceCmd, []string{"missing"}))
}
