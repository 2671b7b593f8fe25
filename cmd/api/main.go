package main

import (
	"fmt"
	"net/http"

	"github.com/rosterhq/oncall-backend-go/internal/config"
	appHTTP "github.com/rosterhq/oncall-backend-go/internal/handler/http"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/jwt"
	"github.com/rosterhq/oncall-backend-go/internal/repository/postgresql"
	holidayService "github.com/rosterhq/oncall-backend-go/internal/service/holiday"
	payrollService "github.com/rosterhq/oncall-backend-go/internal/service/payroll"
	shiftService "github.com/rosterhq/oncall-backend-go/internal/service/shift"
	workerService "github.com/rosterhq/oncall-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	discountRepo := postgresql.NewDiscountRepository(db)
	externalHoursRepo := postgresql.NewExternalHoursRepository(db)

	txManager := postgresql.NewTxManager(db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftSvc := shiftService.NewShiftService(txManager, shiftRepo, assignmentRepo, holidayRepo, workerRepo)
	holidaySvc := holidayService.NewHolidayService(txManager, holidayRepo, shiftRepo, assignmentRepo)
	payrollSvc := payrollService.NewPayrollService(shiftRepo, holidayRepo, workerRepo, rateRepo, discountRepo, externalHoursRepo)
	workerSvc := workerService.NewWorkerService(workerRepo)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)

	router := appHTTP.NewRouter(JWTService, shiftHandler, holidayHandler, payrollHandler, workerHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
