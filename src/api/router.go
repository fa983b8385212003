package api

import (
	"budget-tracker-server/src/config"
	"budget-tracker-server/src/handlers"
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/notify"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config, users []models.User, publisher notify.Publisher) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.ReadOnlyMiddleware(cfg.ReadOnly))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(users))
		r.Post("/verify-token", handlers.VerifyToken(users))
		r.Post("/logout", handlers.Logout())

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(users)).Group(func(r chi.Router) {
			// Segments
			r.Get("/segments", handlers.GetSegments(pool))
			r.Post("/segments", handlers.CreateSegment(pool))
			r.Put("/segments/{segment_id}", handlers.RenameSegment(pool))
			r.Delete("/segments/{segment_id}", handlers.DeleteSegment(pool))

			// Monthly budgets
			r.Get("/budgets/{year}/{month}", handlers.GetMonthlyBudget(pool))
			r.Post("/budgets", handlers.SetMonthlyBudget(pool))

			// Segment budgets
			r.Get("/segment-budgets/{year}/{month}", handlers.GetSegmentBudgets(pool))
			r.Post("/segment-budgets", handlers.SetSegmentBudget(pool))
			r.Post("/segment-budgets/bulk", handlers.BulkSetSegmentBudgets(pool))
			r.Post("/segment-budgets/copy-previous", handlers.CopyPreviousBudgets(pool))

			// Expenses
			r.Get("/expenses/year/{year}", handlers.GetExpensesForYear(pool))
			r.Get("/expenses/{year}/{month}", handlers.GetExpensesForMonth(pool))
			r.Post("/expenses", handlers.CreateExpense(pool, publisher))
			r.Put("/expenses/{expense_id}", handlers.UpdateExpense(pool, publisher))
			r.Delete("/expenses/{expense_id}", handlers.DeleteExpense(pool))

			// Dashboard
			r.Get("/dashboard/month/{year}/{month}", handlers.MonthlyDashboard(pool))
			r.Get("/dashboard/year/{year}", handlers.YearlyDashboard(pool))
			r.Get("/dashboard/year/{year}/monthly", handlers.YearMonthlyBreakdown(pool))

			// Export
			r.Get("/export/month/{year}/{month}", handlers.ExportMonth(pool))
			r.Get("/export/year/{year}", handlers.ExportYear(pool))
		})
	})

	return r
}
