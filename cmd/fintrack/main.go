package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

const usage = `Usage: fintrack <command> [arguments]

Commands:
  login         -email -password
  register      -email -password -first -last [-currency] [-timezone]
  logout
  whoami
  health
  dashboard
  accounts      [add|update|rm] ...
  categories    [add|update|rm] ...
  transactions  [add|update|rm] ...
  budgets       [add|update|rm] ...
  goals         [add|update|rm|progress] ...

Without an action, entity commands list the collection.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	app := cli.Bootstrap(ctx)
	defer app.Close()

	var err error
	switch cmd := os.Args[1]; cmd {
	case "login":
		err = runLogin(ctx, app, os.Args[2:])
	case "register":
		err = runRegister(ctx, app, os.Args[2:])
	case "logout":
		err = runLogout(app)
	case "whoami":
		err = runWhoami(app)
	case "health":
		err = app.Client.Health(ctx)
		if err == nil {
			fmt.Println("ok")
		}
	case "dashboard":
		err = runDashboard(ctx, app)
	case "accounts":
		err = runAccounts(ctx, app, os.Args[2:])
	case "categories":
		err = runCategories(ctx, app, os.Args[2:])
	case "transactions":
		err = runTransactions(ctx, app, os.Args[2:])
	case "budgets":
		err = runBudgets(ctx, app, os.Args[2:])
	case "goals":
		err = runGoals(ctx, app, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		// 401 already cleared the stored session; every other error was
		// surfaced per call.
		if api.IsAuth(err) {
			app.Logger.Error("Session expired, run 'fintrack login' again")
		} else {
			app.Logger.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	creds := core.Credentials{Email: *email, Password: *password}
	if err := creds.Validate(); err != nil {
		return err
	}

	resp, err := app.Client.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := app.Session.Store(ctx, resp.Data.Token); err != nil {
		return err
	}
	app.Logger.Info("Signed in", "email", resp.Data.User.Email)
	return nil
}

func runRegister(ctx context.Context, app *cli.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	currency := fs.String("currency", "EUR", "preferred currency")
	timezone := fs.String("timezone", "UTC", "preferred time zone")
	fs.Parse(args)

	reg := core.Registration{
		Email: *email, Password: *password,
		FirstName: *first, LastName: *last,
		Currency: *currency, TimeZone: *timezone,
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	resp, err := app.Client.Register(ctx, reg)
	if err != nil {
		return err
	}
	if resp.Data.Token != "" {
		if err := app.Session.Store(ctx, resp.Data.Token); err != nil {
			return err
		}
	}
	app.Logger.Info("Registered", "email", *email)
	return nil
}

func runLogout(app *cli.App) error {
	app.Session.Clear()
	app.Logger.Info("Signed out")
	return nil
}

func runWhoami(app *cli.App) error {
	id, ok := app.Session.Identity()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("signed in as %s\n", id.Subject)
	if !id.ExpiresAt.IsZero() {
		fmt.Printf("session expires %s\n", id.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func runDashboard(ctx context.Context, app *cli.App) error {
	stats, err := app.Queries.DashboardStats(ctx)
	if err != nil {
		return err
	}
	cli.RenderDashboard(os.Stdout, stats, time.Now())
	return nil
}

// action splits an entity command into its verb and remaining args.
// No verb means list.
func action(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	switch args[0] {
	case "add", "update", "rm", "progress":
		return args[0], args[1:]
	}
	return "list", args
}

func runAccounts(ctx context.Context, app *cli.App, args []string) error {
	verb, rest := action(args)
	switch verb {
	case "add", "update":
		fs := flag.NewFlagSet("accounts "+verb, flag.ExitOnError)
		id := fs.Int64("id", 0, "account id (update only)")
		name := fs.String("name", "", "account name")
		typ := fs.String("type", string(core.AccountChecking), "account type")
		balance := fs.Float64("balance", 0, "initial balance")
		number := fs.String("number", "", "account number")
		institution := fs.String("institution", "", "institution name")
		fs.Parse(rest)

		p := core.AccountPayload{
			Name: *name, Type: core.AccountType(*typ),
			InitialBalance: *balance, AccountNumber: *number, InstitutionName: *institution,
		}
		if verb == "add" {
			_, err := app.Mutator.CreateAccount(ctx, services.NewForm(), p)
			return err
		}
		_, err := app.Mutator.UpdateAccount(ctx, services.NewForm(), *id, p)
		return err
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return app.Mutator.DeleteAccount(ctx, services.NewForm(), id)
	default:
		accounts, err := app.Queries.Accounts(ctx)
		if err != nil {
			return err
		}
		cli.RenderAccounts(os.Stdout, accounts)
		return nil
	}
}

func runCategories(ctx context.Context, app *cli.App, args []string) error {
	verb, rest := action(args)
	switch verb {
	case "add", "update":
		fs := flag.NewFlagSet("categories "+verb, flag.ExitOnError)
		id := fs.Int64("id", 0, "category id (update only)")
		name := fs.String("name", "", "category name")
		typ := fs.String("type", string(core.CategoryExpense), "category type")
		desc := fs.String("desc", "", "description")
		fs.Parse(rest)

		p := core.CategoryPayload{Name: *name, Type: core.CategoryType(*typ), Description: *desc}
		if verb == "add" {
			_, err := app.Mutator.CreateCategory(ctx, services.NewForm(), p)
			return err
		}
		_, err := app.Mutator.UpdateCategory(ctx, services.NewForm(), *id, p)
		return err
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return app.Mutator.DeleteCategory(ctx, services.NewForm(), id)
	default:
		categories, err := app.Queries.Categories(ctx)
		if err != nil {
			return err
		}
		cli.RenderCategories(os.Stdout, categories)
		return nil
	}
}

func runTransactions(ctx context.Context, app *cli.App, args []string) error {
	verb, rest := action(args)
	switch verb {
	case "add", "update":
		fs := flag.NewFlagSet("transactions "+verb, flag.ExitOnError)
		id := fs.Int64("id", 0, "transaction id (update only)")
		desc := fs.String("desc", "", "description")
		amount := fs.Float64("amount", 0, "amount")
		typ := fs.String("type", string(core.TxExpense), "transaction type")
		account := fs.Int64("account", 0, "account id")
		category := fs.Int64("category", 0, "category id")
		date := fs.String("date", time.Now().Format("2006-01-02"), "transaction date")
		notes := fs.String("notes", "", "notes")
		fs.Parse(rest)

		p := core.TransactionPayload{
			Description: *desc, Amount: *amount, Type: core.TransactionType(*typ),
			AccountID: *account, Date: *date, Notes: *notes,
		}
		if *category > 0 {
			p.CategoryID = category
		}
		if verb == "add" {
			_, err := app.Mutator.CreateTransaction(ctx, services.NewForm(), p)
			return err
		}
		_, err := app.Mutator.UpdateTransaction(ctx, services.NewForm(), *id, p)
		return err
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return app.Mutator.DeleteTransaction(ctx, services.NewForm(), id)
	default:
		txs, err := app.Queries.Transactions(ctx)
		if err != nil {
			return err
		}
		cli.RenderTransactions(os.Stdout, txs)
		return nil
	}
}

func runBudgets(ctx context.Context, app *cli.App, args []string) error {
	verb, rest := action(args)
	switch verb {
	case "add", "update":
		fs := flag.NewFlagSet("budgets "+verb, flag.ExitOnError)
		id := fs.Int64("id", 0, "budget id (update only)")
		name := fs.String("name", "", "budget name")
		amount := fs.Float64("amount", 0, "budget limit")
		period := fs.String("period", string(core.PeriodMonthly), "budget period")
		category := fs.Int64("category", 0, "category id")
		start := fs.String("start", time.Now().Format("2006-01-02"), "start date")
		end := fs.String("end", "", "end date")
		fs.Parse(rest)

		p := core.BudgetPayload{
			Name: *name, Amount: *amount, Period: core.BudgetPeriod(*period),
			StartDate: *start, EndDate: *end,
		}
		if *category > 0 {
			p.CategoryID = category
		}
		if verb == "add" {
			_, err := app.Mutator.CreateBudget(ctx, services.NewForm(), p)
			return err
		}
		_, err := app.Mutator.UpdateBudget(ctx, services.NewForm(), *id, p)
		return err
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return app.Mutator.DeleteBudget(ctx, services.NewForm(), id)
	default:
		budgets, err := app.Queries.Budgets(ctx)
		if err != nil {
			return err
		}
		cli.RenderBudgets(os.Stdout, budgets)
		return nil
	}
}

func runGoals(ctx context.Context, app *cli.App, args []string) error {
	verb, rest := action(args)
	switch verb {
	case "add", "update":
		fs := flag.NewFlagSet("goals "+verb, flag.ExitOnError)
		id := fs.Int64("id", 0, "goal id (update only)")
		name := fs.String("name", "", "goal name")
		target := fs.Float64("target", 0, "target amount")
		typ := fs.String("type", string(core.GoalSavings), "goal type")
		date := fs.String("date", "", "target date")
		desc := fs.String("desc", "", "description")
		fs.Parse(rest)

		p := core.GoalPayload{
			Name: *name, TargetAmount: *target, Type: core.GoalType(*typ),
			TargetDate: *date, Description: *desc,
		}
		if verb == "add" {
			_, err := app.Mutator.CreateGoal(ctx, services.NewForm(), p)
			return err
		}
		_, err := app.Mutator.UpdateGoal(ctx, services.NewForm(), *id, p)
		return err
	case "progress":
		fs := flag.NewFlagSet("goals progress", flag.ExitOnError)
		id := fs.Int64("id", 0, "goal id")
		amount := fs.Float64("amount", 0, "amount to add")
		fs.Parse(rest)

		_, err := app.Mutator.AddGoalProgress(ctx, services.NewForm(), *id, *amount)
		return err
	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return app.Mutator.DeleteGoal(ctx, services.NewForm(), id)
	default:
		goals, err := app.Queries.Goals(ctx)
		if err != nil {
			return err
		}
		cli.RenderGoals(os.Stdout, goals, time.Now())
		return nil
	}
}

func parseID(args []string) (int64, error) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.Int64("id", 0, "entity id")
	fs.Parse(args)
	if *id <= 0 {
		return 0, errors.New("missing -id")
	}
	return *id, nil
}
