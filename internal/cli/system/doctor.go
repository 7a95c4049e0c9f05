package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/utils"
	"github.com/quietfield/tomoplan/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Settings sanity (only if DB is reachable)
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (database not reachable)\n")
	}

	// Check 3: Day template validation (only if DB is reachable)
	if dbReachable {
		if err := checkTemplate(ctx); err != nil {
			fmt.Printf("❌ Day template: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Day template: OK\n")
		}
	} else {
		fmt.Printf("⊘ Day template: SKIPPED (database not reachable)\n")
	}

	// Check 4: Today's data validation (only if DB is reachable)
	if dbReachable {
		if err := checkTodayData(ctx); err != nil {
			fmt.Printf("❌ Today's data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Today's data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Today's data: SKIPPED (database not reachable)\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(ctx, dbReachable); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Concurrent instances (warning only)
	if err := checkDuplicateProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent instances: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.WorkMinutes <= 0 {
		return fmt.Errorf("work_minutes must be positive, got %d", settings.WorkMinutes)
	}
	if settings.BreakMinutes < 0 {
		return fmt.Errorf("break_minutes must not be negative, got %d", settings.BreakMinutes)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone: %s", settings.Timezone)
	}
	return nil
}

func checkTemplate(ctx *cli.Context) error {
	blocks, err := ctx.Store.GetBlocks()
	if err != nil {
		return fmt.Errorf("failed to get day template: %w", err)
	}
	result := validation.New().ValidateBlocks(blocks)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkTodayData(ctx *cli.Context) error {
	date, err := ctx.ResolveDate("")
	if err != nil {
		return err
	}

	v := validation.New()
	appts, err := ctx.Store.GetAppointments(date)
	if err != nil {
		return fmt.Errorf("failed to get appointments: %w", err)
	}
	if result := v.ValidateAppointments(appts); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	todos, err := ctx.Store.GetTodos(date)
	if err != nil {
		return fmt.Errorf("failed to get todos: %w", err)
	}
	if result := v.ValidateTodos(todos); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context, dbReachable bool) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if dbReachable {
		settings, err := ctx.Store.GetSettings()
		if err == nil {
			if _, err := utils.NowInTimezone(settings.Timezone); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkDuplicateProcesses warns when more than one tomoplan process is
// running; concurrent writers against the same SQLite file risk lock
// contention.
func checkDuplicateProcesses() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), filepath.Ext(p.Executable()))
		if name == constants.AppName {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("found %d other running %s process(es)", count, constants.AppName)
	}
	return nil
}
