package db

import (
	storage "budget-tracker-server/src/db"
	"budget-tracker-server/src/models"
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// These tests exercise real SQL semantics (upserts, cascades, tenancy
// predicates) and need a database. Set TEST_DATABASE_URL to run them.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := storage.Connect(url)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := storage.RunMigrations(url); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return pool
}

// cleanUser removes every row belonging to a test user id; segments
// cascade to budgets and expenses.
func cleanUser(t *testing.T, pool *pgxpool.Pool, userID int) {
	t.Helper()
	ctx := context.Background()
	if _, err := pool.Exec(ctx, `DELETE FROM segments WHERE user_id = $1`, userID); err != nil {
		t.Fatal(err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM monthly_budgets WHERE user_id = $1`, userID); err != nil {
		t.Fatal(err)
	}
}

func mustCreateSegment(t *testing.T, pool *pgxpool.Pool, userID int, name string) *models.Segment {
	t.Helper()
	s, err := CreateSegment(context.Background(), pool, userID, name)
	if err != nil {
		t.Fatalf("creating segment %s: %v", name, err)
	}
	return s
}

func TestUpsertSegmentBudget_Idempotent(t *testing.T) {
	pool := testPool(t)
	const userID = 9001
	cleanUser(t, pool, userID)
	t.Cleanup(func() { cleanUser(t, pool, userID) })
	ctx := context.Background()

	seg := mustCreateSegment(t, pool, userID, "Food")

	for _, amount := range []float64{500, 650} {
		_, err := UpsertSegmentBudget(ctx, pool, &models.SegmentBudget{
			UserID: userID, SegmentID: seg.ID, Year: 2024, Month: 5, AllocatedAmount: amount,
		})
		if err != nil {
			t.Fatalf("upsert %v: %v", amount, err)
		}
	}

	budgets, err := GetSegmentBudgets(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 1 {
		t.Fatalf("got %d rows, want exactly 1", len(budgets))
	}
	if budgets[0].AllocatedAmount != 650 {
		t.Errorf("allocated_amount = %v, want the latest value 650", budgets[0].AllocatedAmount)
	}
}

func TestCopyPrevious_NonDestructive(t *testing.T) {
	pool := testPool(t)
	const userID = 9002
	cleanUser(t, pool, userID)
	t.Cleanup(func() { cleanUser(t, pool, userID) })
	ctx := context.Background()

	food := mustCreateSegment(t, pool, userID, "Food")
	rent := mustCreateSegment(t, pool, userID, "Rent")

	for seg, amount := range map[*models.Segment]float64{food: 100, rent: 200} {
		_, err := UpsertSegmentBudget(ctx, pool, &models.SegmentBudget{
			UserID: userID, SegmentID: seg.ID, Year: 2024, Month: 4, AllocatedAmount: amount,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	// Destination already has an allocation for Food.
	_, err := UpsertSegmentBudget(ctx, pool, &models.SegmentBudget{
		UserID: userID, SegmentID: food.ID, Year: 2024, Month: 5, AllocatedAmount: 999,
	})
	if err != nil {
		t.Fatal(err)
	}

	changes, err := CopyPreviousSegmentBudgets(ctx, pool, userID, 2024, 4, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1 (only the absent segment)", changes)
	}

	budgets, err := GetSegmentBudgets(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	got := map[int]float64{}
	for _, b := range budgets {
		got[b.SegmentID] = b.AllocatedAmount
	}
	if got[food.ID] != 999 {
		t.Errorf("existing allocation was overwritten: %v, want 999", got[food.ID])
	}
	if got[rent.ID] != 200 {
		t.Errorf("missing allocation not copied: %v, want 200", got[rent.ID])
	}
}

func TestTenancyIsolation(t *testing.T) {
	pool := testPool(t)
	const userA, userB = 9003, 9004
	cleanUser(t, pool, userA)
	cleanUser(t, pool, userB)
	t.Cleanup(func() {
		cleanUser(t, pool, userA)
		cleanUser(t, pool, userB)
	})
	ctx := context.Background()

	seg := mustCreateSegment(t, pool, userA, "Secret")
	_, err := CreateExpense(ctx, pool, &models.Expense{
		UserID: userA, SegmentID: seg.ID, Year: 2024, Month: 5,
		Amount: 42, Description: "private", ExpenseDate: "2024-05-10",
	})
	if err != nil {
		t.Fatal(err)
	}

	segments, err := GetSegmentsForUser(ctx, pool, userB)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 0 {
		t.Errorf("user B sees %d of user A's segments", len(segments))
	}

	expenses, err := GetExpensesForMonth(ctx, pool, userB, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 0 {
		t.Errorf("user B sees %d of user A's expenses", len(expenses))
	}

	// Mutating someone else's rows affects nothing and is not an error.
	changes, err := DeleteSegment(ctx, pool, userB, seg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if changes != 0 {
		t.Errorf("user B deleted %d of user A's segments", changes)
	}

	changes, err = RenameSegment(ctx, pool, userB, seg.ID, "Mine now")
	if err != nil {
		t.Fatal(err)
	}
	if changes != 0 {
		t.Errorf("user B renamed %d of user A's segments", changes)
	}

	segments, err = GetSegmentsForUser(ctx, pool, userA)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 1 || segments[0].Name != "Secret" {
		t.Errorf("user A's segment damaged: %+v", segments)
	}
}

func TestDeleteSegment_Cascades(t *testing.T) {
	pool := testPool(t)
	const userID = 9005
	cleanUser(t, pool, userID)
	t.Cleanup(func() { cleanUser(t, pool, userID) })
	ctx := context.Background()

	seg := mustCreateSegment(t, pool, userID, "Doomed")
	_, err := UpsertSegmentBudget(ctx, pool, &models.SegmentBudget{
		UserID: userID, SegmentID: seg.ID, Year: 2024, Month: 5, AllocatedAmount: 300,
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = CreateExpense(ctx, pool, &models.Expense{
		UserID: userID, SegmentID: seg.ID, Year: 2024, Month: 5,
		Amount: 50, ExpenseDate: "2024-05-01",
	})
	if err != nil {
		t.Fatal(err)
	}

	changes, err := DeleteSegment(ctx, pool, userID, seg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}

	budgets, err := GetSegmentBudgets(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 0 {
		t.Errorf("budgets survived the cascade: %+v", budgets)
	}
	expenses, err := GetExpensesForMonth(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 0 {
		t.Errorf("expenses survived the cascade: %+v", expenses)
	}

	rollup, err := GetMonthlyRollup(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rollup) != 0 {
		t.Errorf("rollup still reports deleted segment: %+v", rollup)
	}
}

func TestMonthlyRollup(t *testing.T) {
	pool := testPool(t)
	const userID = 9006
	cleanUser(t, pool, userID)
	t.Cleanup(func() { cleanUser(t, pool, userID) })
	ctx := context.Background()

	food := mustCreateSegment(t, pool, userID, "Food")
	// A segment with no budget and no spend must still appear.
	empty := mustCreateSegment(t, pool, userID, "Travel")

	_, err := UpsertSegmentBudget(ctx, pool, &models.SegmentBudget{
		UserID: userID, SegmentID: food.ID, Year: 2024, Month: 5, AllocatedAmount: 500,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []struct {
		amount float64
		date   string
	}{{80.50, "2024-05-03"}, {25.00, "2024-05-20"}} {
		_, err := CreateExpense(ctx, pool, &models.Expense{
			UserID: userID, SegmentID: food.ID, Year: 2024, Month: 5,
			Amount: e.amount, ExpenseDate: e.date,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	rollup, err := GetMonthlyRollup(ctx, pool, userID, 2024, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rollup) != 2 {
		t.Fatalf("got %d segments, want 2", len(rollup))
	}

	byName := map[string]models.DashboardSegment{}
	for _, s := range rollup {
		byName[s.Name] = s
	}
	got := byName["Food"]
	if got.Budget != 500 || got.Spent != 105.5 || got.Remaining != 394.5 {
		t.Errorf("Food = %+v, want budget 500, spent 105.5, remaining 394.5", got)
	}
	if e := byName["Travel"]; e.ID != empty.ID || e.Budget != 0 || e.Spent != 0 {
		t.Errorf("empty segment not zero-filled: %+v", e)
	}
}
