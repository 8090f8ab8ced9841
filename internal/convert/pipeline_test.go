package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpcsv/internal/registry"
	"github.com/leapstack-labs/dumpcsv/internal/testutil"
	"github.com/leapstack-labs/dumpcsv/pkg/dialects/mysql"
	"github.com/leapstack-labs/dumpcsv/pkg/dialects/postgres"
)

const mysqldump = `-- MySQL dump 10.13
/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;

DROP TABLE IF EXISTS ` + "`users`" + `;
CREATE TABLE ` + "`users`" + ` (
  ` + "`id`" + ` int(11) NOT NULL,
  ` + "`name`" + ` varchar(255) DEFAULT NULL,
  ` + "`bio`" + ` text,
  PRIMARY KEY (` + "`id`" + `)
) ENGINE=InnoDB DEFAULT CHARSET=utf8;

LOCK TABLES ` + "`users`" + ` WRITE;
INSERT INTO ` + "`users`" + ` VALUES (1,'Alice','likes, commas'),(2,'Bob',NULL),(3,'O\'Hara','line\nbreak');
UNLOCK TABLES;

CREATE TABLE ` + "`orders`" + ` (
  ` + "`id`" + ` int(11) NOT NULL,
  ` + "`total`" + ` decimal(10,2)
) ENGINE=InnoDB;
INSERT INTO ` + "`orders`" + ` VALUES (10,19.99)
INSERT INTO ` + "`orders`" + ` VALUES (11,-5.00)
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRun_MySQLDump(t *testing.T) {
	input := writeInput(t, "shop.sql", mysqldump)
	outDir := t.TempDir()

	res, err := Run(context.Background(), Options{
		Input:       input,
		OutputDir:   outDir,
		Dialect:     mysql.MySQL,
		ScratchBase: t.TempDir(),
		Logger:      testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	dest := filepath.Join(outDir, "shop.sql-output")
	assert.Equal(t, dest, res.Destination)
	assert.True(t, res.Atomic)
	assert.Equal(t, "mysql", res.Dialect)
	assert.Equal(t, int64(5), res.Rows)
	assert.Equal(t, 21, res.Lines)
	assert.Equal(t, 0, res.Flushes)

	assert.Equal(t,
		"id,name,bio\n1,Alice,\"likes, commas\"\n2,Bob,\n3,O''Hara,\"line\nbreak\"\n",
		readOutput(t, dest, "users.csv"))
	assert.Equal(t, "id,total\n10,19.99\n11,-5.00\n", readOutput(t, dest, "orders.csv"))

	require.Len(t, res.Tables, 2)
	assert.Equal(t, registry.TableStats{Name: "users", File: "users.csv", Rows: 3}, res.Tables[0])
	assert.Equal(t, registry.TableStats{Name: "orders", File: "orders.csv", Rows: 2}, res.Tables[1])
}

func TestRun_PostgresDump(t *testing.T) {
	dumpText := strings.Join([]string{
		"SET statement_timeout = 0;",
		"CREATE TABLE public.items (",
		"    id integer NOT NULL,",
		"    label text",
		");",
		"INSERT INTO public.items (id, label) VALUES (1, 'tab\\there');",
		"INSERT INTO public.items (id, label) VALUES (2, E'real\\ttab');",
		"",
	}, "\n")
	input := writeInput(t, "pg.sql", dumpText)
	outDir := t.TempDir()

	res, err := Run(context.Background(), Options{
		Input:       input,
		OutputDir:   outDir,
		Dialect:     postgres.Postgres,
		ScratchBase: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, "id,label\n1,tab\there\n2,real\ttab\n", readOutput(t, res.Destination, "public.items.csv"))
}

func TestRun_ReplacesPreviousOutput(t *testing.T) {
	input := writeInput(t, "d.sql", "INSERT INTO t VALUES (1);\n")
	outDir := t.TempDir()
	stale := filepath.Join(outDir, "d.sql-output", "stale.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	_, err := Run(context.Background(), Options{Input: input, OutputDir: outDir, ScratchBase: t.TempDir()})
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "\n1\n", readOutput(t, filepath.Join(outDir, "d.sql-output"), "t.csv"))
}

func TestRun_ReportsFlushes(t *testing.T) {
	input := writeInput(t, "f.sql", "CREATE TABLE a (x int);\nCREATE TABLE b (x int);\nCREATE TABLE c (x int);\n")

	res, err := Run(context.Background(), Options{
		Input:         input,
		OutputDir:     t.TempDir(),
		MaxOpenTables: 2,
		ScratchBase:   t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Lines)
	assert.Equal(t, 2, res.Flushes)
	assert.Len(t, res.Tables, 3)
}

func TestRun_MissingInput(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Input:     filepath.Join(t.TempDir(), "nope.sql"),
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestRun_UnknownEncoding(t *testing.T) {
	input := writeInput(t, "d.sql", "")
	_, err := Run(context.Background(), Options{Input: input, OutputDir: t.TempDir(), Encoding: "klingon"})
	require.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	input := writeInput(t, "d.sql", "INSERT INTO t VALUES (1);\n")
	outDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Input: input, OutputDir: outDir, ScratchBase: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = os.Stat(filepath.Join(outDir, "d.sql-output"))
	assert.True(t, os.IsNotExist(err), "destination must not be published")
}

func TestRun_FatalErrorLeavesScratch(t *testing.T) {
	base := t.TempDir()
	outDir := t.TempDir()
	// File names longer than the filesystem limit make the open fail.
	long := strings.Repeat("x", 300)
	input := writeInput(t, "e.sql", "CREATE TABLE ok (a int);\nCREATE TABLE "+long+" (a int);\n")

	logger, logs := testutil.NewCaptureLogger(t)
	_, err := Run(context.Background(), Options{
		Input:       input,
		OutputDir:   outDir,
		ScratchBase: base,
		Logger:      logger,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open output")
	assert.True(t, logs.Contains("conversion failed"))

	scratch := ScratchDir(base, os.Getpid())
	_, statErr := os.Stat(filepath.Join(scratch, "ok.csv"))
	assert.NoError(t, statErr, "scratch is kept for inspection")
	_, statErr = os.Stat(filepath.Join(outDir, "e.sql-output"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestScratchDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/base", ".dumpcsv-42"), ScratchDir("/base", 42))
	assert.Equal(t, filepath.Join(os.TempDir(), ".dumpcsv-7"), ScratchDir("", 7))
}

func TestPrepareScratchClearsStaleDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".dumpcsv-1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.csv"), []byte("x"), 0o644))

	require.NoError(t, PrepareScratch(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
