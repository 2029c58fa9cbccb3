package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// migrator is the part of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

func main() {
	_ = godotenv.Load()
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatConsole})

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}
	dbURL = withPreparedBinaryFlag(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT"))

	migrationsDir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}

	err = run(m, os.Args[1:], os.Stdout, logger)
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}

	var usage usageError
	switch {
	case errors.As(err, &usage):
		logger.Error(usage.Error())
		printUsage(os.Stderr)
		os.Exit(2)
	case err != nil:
		logger.Error("migration failed", "command", os.Args[1], "source", sourceURL, "error", err)
		os.Exit(1)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func run(m migrator, args []string, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch cmd := strings.ToLower(strings.TrimSpace(args[0])); cmd {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
			return err
		}
		logger.Info("rolled back migrations", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, _ = fmt.Fprintln(out, "version: none")
			_, _ = fmt.Fprintln(out, "dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, _ = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return usageError("force requires a version argument")
		}
		version, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced migration version", "version", version)
	case "goto", "migrate":
		if len(args) < 2 {
			return usageError(cmd + " requires a target version argument")
		}
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
			return err
		}
		logger.Info("migrated to version", "version", target)
	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	// -1 clears the version table entry, as golang-migrate allows.
	if value < -1 {
		return 0, fmt.Errorf("version must be >= -1")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir(overrides ...string) (string, error) {
	candidates := append(append([]string{}, overrides...), defaultMigrationDirs...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, %s)", strings.Join(defaultMigrationDirs, ", "))
}

func withPreparedBinaryFlag(raw string, enabled bool) string {
	if !enabled {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envBool(key string) bool {
	ok, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && ok
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "usage: %s <up|down|version|force|goto> [args]\n", name)
	_, _ = fmt.Fprintln(w, "examples:")
	for _, example := range []string{"up", "down 1", "version", "force 20260301000002", "goto 20260301000001"} {
		_, _ = fmt.Fprintf(w, "  %s %s\n", name, example)
	}
}
