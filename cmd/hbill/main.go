package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hbill/hbill/internal/config"
	"github.com/hbill/hbill/internal/domain/billing"
	"github.com/hbill/hbill/internal/domain/identity"
	"github.com/hbill/hbill/internal/domain/patient"
	"github.com/hbill/hbill/internal/domain/reporting"
	"github.com/hbill/hbill/internal/platform/db"
	"github.com/hbill/hbill/internal/platform/export"
)

const hospitalName = "City Care Hospital"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hbill",
		Short: "Hospital billing and patient registry",
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(patientCmd())
	rootCmd.AddCommand(billCmd())
	rootCmd.AddCommand(payCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(backupCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *db.Store
	users    *identity.Service
	patients *patient.Service
	bills    *billing.Service
	reports  *reporting.Service
	exporter *export.Exporter
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	patients := patient.NewService(patient.NewRepository(store), log)
	return &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		users:    identity.NewService(identity.NewRepository(store), log),
		patients: patients,
		bills: billing.NewService(
			billing.NewRepository(store),
			billing.NewPaymentRepository(store),
			patients,
			store,
			log,
		),
		reports:  reporting.NewService(reporting.NewRepository(store), log),
		exporter: export.New(store, cfg.ExportDir, log),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level: %w", err)
	}

	var out = os.Stderr
	w := zerolog.New(out)
	if cfg.LogPretty {
		w = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return w.Level(level).With().Timestamp().Logger(), nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store schema and default users",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			fmt.Printf("store ready at %s\n", a.store.Path())
			return nil
		}),
	}
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify a user's credentials",
		RunE: func(c *cobra.Command, args []string) error {
			username, _ := c.Flags().GetString("username")
			password, _ := c.Flags().GetString("password")
			return runApp(c, func(ctx context.Context, a *app) error {
				sess, err := a.users.Login(ctx, username, password)
				if err != nil {
					return err
				}
				fmt.Printf("logged in as %s (%s), session %s\n", sess.Username, sess.Role, sess.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringP("username", "u", "", "username")
	cmd.Flags().StringP("password", "p", "", "password")
	return cmd
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			users, err := a.users.List(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Printf("%-12s  %s\n", u.Username, u.Role)
			}
			return nil
		}),
	}
}

func patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage the patient registry",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a new patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in := patient.AddInput{Name: args[0]}
			in.Age, _ = c.Flags().GetString("age")
			in.Gender, _ = c.Flags().GetString("gender")
			in.Contact, _ = c.Flags().GetString("contact")
			in.Address, _ = c.Flags().GetString("address")
			in.Disease, _ = c.Flags().GetString("disease")
			in.AdmissionDate, _ = c.Flags().GetString("admitted")
			return runApp(c, func(ctx context.Context, a *app) error {
				id, err := a.patients.Add(ctx, in)
				if err != nil {
					return err
				}
				fmt.Printf("patient registered with id %d\n", id)
				return nil
			})
		},
	}
	addCmd.Flags().String("age", "", "age in years")
	addCmd.Flags().String("gender", "", "gender")
	addCmd.Flags().String("contact", "", "contact number")
	addCmd.Flags().String("address", "", "address")
	addCmd.Flags().String("disease", "", "diagnosis")
	addCmd.Flags().String("admitted", "", "admission date (YYYY-MM-DD, default today)")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0], "patient id")
			if err != nil {
				return err
			}
			return runApp(c, func(ctx context.Context, a *app) error {
				p, err := a.patients.Get(ctx, id)
				if err != nil {
					return err
				}
				printPatient(p)
				return nil
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a patient; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0], "patient id")
			if err != nil {
				return err
			}
			var u patient.Update
			u.Name, _ = c.Flags().GetString("name")
			u.Age, _ = c.Flags().GetString("age")
			u.Gender, _ = c.Flags().GetString("gender")
			u.Contact, _ = c.Flags().GetString("contact")
			u.Address, _ = c.Flags().GetString("address")
			u.Disease, _ = c.Flags().GetString("disease")
			return runApp(c, func(ctx context.Context, a *app) error {
				if err := a.patients.UpdateFields(ctx, id, u); err != nil {
					return err
				}
				fmt.Println("patient updated")
				return nil
			})
		},
	}
	updateCmd.Flags().String("name", "", "name")
	updateCmd.Flags().String("age", "", "age in years")
	updateCmd.Flags().String("gender", "", "gender")
	updateCmd.Flags().String("contact", "", "contact number")
	updateCmd.Flags().String("address", "", "address")
	updateCmd.Flags().String("disease", "", "diagnosis")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a patient and all their bills and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0], "patient id")
			if err != nil {
				return err
			}
			return runApp(c, func(ctx context.Context, a *app) error {
				if err := a.patients.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Println("patient deleted")
				return nil
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search patients by name, contact, or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			criterion, _ := c.Flags().GetString("by")
			return runApp(c, func(ctx context.Context, a *app) error {
				results, err := a.patients.Find(ctx, criterion, args[0])
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Println("no patients found")
					return nil
				}
				for _, s := range results {
					fmt.Printf("%4d  %-24s  age=%s  contact=%s  admitted=%s\n",
						s.ID, s.Name, strOrDash(agePtr(s.Age)), strOrDash(ptrVal(s.Contact)), s.AdmissionDate)
				}
				return nil
			})
		},
	}
	searchCmd.Flags().String("by", patient.ByName, "search criterion: name, contact, or id")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all patients",
		RunE: func(c *cobra.Command, args []string) error {
			term, _ := c.Flags().GetString("filter")
			return runApp(c, func(ctx context.Context, a *app) error {
				patients, err := a.patients.List(ctx, term)
				if err != nil {
					return err
				}
				for _, p := range patients {
					printPatient(p)
					fmt.Println()
				}
				fmt.Printf("%d patient(s)\n", len(patients))
				return nil
			})
		},
	}
	listCmd.Flags().String("filter", "", "filter by name or contact substring")

	cmd.AddCommand(addCmd, getCmd, updateCmd, deleteCmd, searchCmd, listCmd)
	return cmd
}

func billCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Generate and inspect bills",
	}

	generateCmd := &cobra.Command{
		Use:   "generate PATIENT_ID",
		Short: "Generate a bill for a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			pid, err := parseID(args[0], "patient id")
			if err != nil {
				return err
			}
			in := billing.GenerateInput{PatientID: pid}
			in.RoomCharges, _ = c.Flags().GetString("room")
			in.DoctorFees, _ = c.Flags().GetString("doctor")
			in.MedicineCharges, _ = c.Flags().GetString("medicine")
			in.LabCharges, _ = c.Flags().GetString("lab")
			in.OtherCharges, _ = c.Flags().GetString("other")
			in.PaymentStatus, _ = c.Flags().GetString("status")
			in.AmountPaid, _ = c.Flags().GetString("paid")
			in.PaymentMethod, _ = c.Flags().GetString("method")
			return runApp(c, func(ctx context.Context, a *app) error {
				b, err := a.bills.Generate(ctx, in)
				if err != nil {
					return err
				}
				fmt.Print(b.Receipt(hospitalName))
				return nil
			})
		},
	}
	generateCmd.Flags().String("room", "", "room charges")
	generateCmd.Flags().String("doctor", "", "doctor fees")
	generateCmd.Flags().String("medicine", "", "medicine charges")
	generateCmd.Flags().String("lab", "", "lab charges")
	generateCmd.Flags().String("other", "", "other charges")
	generateCmd.Flags().String("status", billing.StatusPending, "payment status: Pending, Partial, or Paid")
	generateCmd.Flags().String("paid", "", "amount paid up front (Partial only)")
	generateCmd.Flags().String("method", "", "payment method")

	showCmd := &cobra.Command{
		Use:   "show BILL_NO",
		Short: "Show one bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			no, err := parseID(args[0], "bill number")
			if err != nil {
				return err
			}
			return runApp(c, func(ctx context.Context, a *app) error {
				b, err := a.bills.Get(ctx, no)
				if err != nil {
					return err
				}
				printBill(b)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bills, newest first",
		RunE: func(c *cobra.Command, args []string) error {
			pid, _ := c.Flags().GetInt64("patient")
			return runApp(c, func(ctx context.Context, a *app) error {
				var bills []*billing.Bill
				var err error
				if pid > 0 {
					bills, err = a.bills.ListByPatient(ctx, pid)
				} else {
					bills, err = a.bills.List(ctx)
				}
				if err != nil {
					return err
				}
				for _, b := range bills {
					printBill(b)
				}
				fmt.Printf("%d bill(s)\n", len(bills))
				return nil
			})
		},
	}
	listCmd.Flags().Int64("patient", 0, "only bills for this patient id")

	outstandingCmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List bills with a balance due, largest first",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			bills, err := a.bills.ListOutstanding(ctx)
			if err != nil {
				return err
			}
			var total float64
			for _, b := range bills {
				printBill(b)
				total += b.BalanceDue
			}
			fmt.Printf("%d bill(s), %.2f outstanding\n", len(bills), total)
			return nil
		}),
	}

	paymentsCmd := &cobra.Command{
		Use:   "payments BILL_NO",
		Short: "Show a bill's payment history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			no, err := parseID(args[0], "bill number")
			if err != nil {
				return err
			}
			return runApp(c, func(ctx context.Context, a *app) error {
				payments, err := a.bills.PaymentHistory(ctx, no)
				if err != nil {
					return err
				}
				for _, p := range payments {
					fmt.Printf("%s  %10.2f  %s\n", p.PaymentDate, p.Amount, strOrDash(ptrVal(p.PaymentMethod)))
				}
				fmt.Printf("%d payment(s)\n", len(payments))
				return nil
			})
		},
	}

	receiptCmd := &cobra.Command{
		Use:   "receipt BILL_NO",
		Short: "Print a bill's receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			no, err := parseID(args[0], "bill number")
			if err != nil {
				return err
			}
			return runApp(c, func(ctx context.Context, a *app) error {
				b, err := a.bills.Get(ctx, no)
				if err != nil {
					return err
				}
				fmt.Print(b.Receipt(hospitalName))
				return nil
			})
		},
	}

	cmd.AddCommand(generateCmd, showCmd, listCmd, outstandingCmd, paymentsCmd, receiptCmd)
	return cmd
}

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay BILL_NO AMOUNT",
		Short: "Record a payment against a bill",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			no, err := parseID(args[0], "bill number")
			if err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("amount must be a number, got %q", args[1])
			}
			method, _ := c.Flags().GetString("method")
			return runApp(c, func(ctx context.Context, a *app) error {
				b, err := a.bills.ApplyPayment(ctx, no, amount, method)
				if err != nil {
					return err
				}
				fmt.Printf("payment recorded; status %s, balance %.2f\n", b.PaymentStatus, b.BalanceDue)
				return nil
			})
		},
	}
	cmd.Flags().String("method", "", "payment method")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial and patient reports",
	}

	financialCmd := &cobra.Command{
		Use:   "financial",
		Short: "Billing totals and collection rate",
		RunE: func(c *cobra.Command, args []string) error {
			out, _ := c.Flags().GetString("out")
			return runApp(c, func(ctx context.Context, a *app) error {
				f, err := a.reports.FinancialSummary(ctx)
				if err != nil {
					return err
				}
				return emitReport(f.Render(), out)
			})
		},
	}
	financialCmd.Flags().String("out", "", "write the report to this file instead of stdout")

	patientsCmd := &cobra.Command{
		Use:   "patients",
		Short: "Registry demographics and common diseases",
		RunE: func(c *cobra.Command, args []string) error {
			out, _ := c.Flags().GetString("out")
			return runApp(c, func(ctx context.Context, a *app) error {
				p, err := a.reports.PatientStats(ctx)
				if err != nil {
					return err
				}
				return emitReport(p.Render(), out)
			})
		},
	}
	patientsCmd.Flags().String("out", "", "write the report to this file instead of stdout")

	cmd.AddCommand(financialCmd, patientsCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "revenue",
		Short: "Revenue and outstanding balances per month",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			months, err := a.reports.MonthlyRevenue(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s  %12s  %12s  %12s  %6s\n", "Month", "Billed", "Collected", "Outstanding", "Bills")
			for _, m := range months {
				fmt.Printf("%-8s  %12.2f  %12.2f  %12.2f  %6d\n", m.Month, m.Billed, m.Collected, m.Outstanding, m.BillCount)
			}
			return nil
		}),
	})

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dashboard counters",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			s, err := a.reports.SystemStats(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Patients         : %d\n", s.Patients)
			fmt.Printf("Bills            : %d\n", s.Bills)
			fmt.Printf("Payments         : %d\n", s.Payments)
			fmt.Printf("Pending Bills    : %d\n", s.PendingBills)
			fmt.Printf("Revenue          : %.2f\n", s.Revenue)
			fmt.Printf("Outstanding      : %.2f\n", s.Outstanding)
			fmt.Printf("Today Admissions : %d\n", s.TodayPatients)
			fmt.Printf("Today Revenue    : %.2f\n", s.TodayRevenue)
			return nil
		}),
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "export TABLE",
		Short:     "Export a table (or 'all') to CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: append(export.Tables(), "all"),
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c, func(ctx context.Context, a *app) error {
				if args[0] == "all" {
					paths, err := a.exporter.All(ctx)
					if err != nil {
						return err
					}
					for _, p := range paths {
						fmt.Println(p)
					}
					return nil
				}
				path, err := a.exporter.Table(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			})
		},
	}
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the store file into the backup directory",
		RunE: runAppE(func(ctx context.Context, a *app) error {
			path, err := a.store.Backup(ctx, a.cfg.BackupDir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		}),
	}
}

func runApp(c *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := c.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

func runAppE(fn func(ctx context.Context, a *app) error) func(c *cobra.Command, args []string) error {
	return func(c *cobra.Command, args []string) error {
		return runApp(c, fn)
	}
}

func emitReport(text, out string) error {
	if out == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Println(out)
	return nil
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", what, raw)
	}
	return id, nil
}

func printPatient(p *patient.Patient) {
	fmt.Printf("Patient #%d\n", p.ID)
	fmt.Printf("  Name      : %s\n", p.Name)
	fmt.Printf("  Age       : %s\n", strOrDash(agePtr(p.Age)))
	fmt.Printf("  Gender    : %s\n", strOrDash(ptrVal(p.Gender)))
	fmt.Printf("  Contact   : %s\n", strOrDash(ptrVal(p.Contact)))
	fmt.Printf("  Address   : %s\n", strOrDash(ptrVal(p.Address)))
	fmt.Printf("  Disease   : %s\n", strOrDash(ptrVal(p.Disease)))
	fmt.Printf("  Admitted  : %s\n", p.AdmissionDate)
}

func printBill(b *billing.Bill) {
	fmt.Printf("#%d  %s  %-24s  total=%.2f  paid=%.2f  due=%.2f  %s\n",
		b.BillNo, b.BillDate, b.PatientName, b.TotalAmount, b.AmountPaid, b.BalanceDue, b.PaymentStatus)
}

func strOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func ptrVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func agePtr(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
