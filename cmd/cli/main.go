// walletops CLI: the same account ledger as the API server, backed by a flat
// JSON file instead of Postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/walletops/internal/domain"
	"github.com/punchamoorthee/walletops/internal/service"
	"github.com/punchamoorthee/walletops/internal/store"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: walletops-cli [-file accounts.json] <command> [arguments]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  create <name> [currency]      create an account (currency defaults to USD)")
	fmt.Fprintln(os.Stderr, "  list                          list all accounts")
	fmt.Fprintln(os.Stderr, "  get <id>                      show one account")
	fmt.Fprintln(os.Stderr, "  deposit <id> <amount>         deposit in major units, e.g. 100.50")
	fmt.Fprintln(os.Stderr, "  withdraw <id> <amount>        withdraw in major units")
	fmt.Fprintln(os.Stderr, "  delete <id>                   delete an account")
}

func main() {
	file := flag.String("file", "accounts.json", "path to the JSON data file")
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	st, err := store.NewJSONStore(*file)
	if err != nil {
		fatal(err)
	}
	svc := service.NewAccountService(st)
	ctx := context.Background()

	switch args[0] {
	case "create":
		if len(args) < 2 {
			fatalf("usage: create <name> [currency]")
		}
		currency := "USD"
		if len(args) > 2 {
			currency = args[2]
		}
		account, err := svc.Create(ctx, args[1], currency)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Created account %q (%s)\n", account.Name, account.ID)

	case "list":
		accounts, err := svc.List(ctx)
		if err != nil {
			fatal(err)
		}
		printTable(accounts)

	case "get":
		account, err := svc.Get(ctx, parseID(args, 1))
		if err != nil {
			fatal(err)
		}
		printAccount(account)

	case "deposit":
		account, err := svc.Deposit(ctx, parseID(args, 1), parseAmount(args, 2))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("New balance: %s %s\n", account.BalanceDecimal().StringFixed(2), account.Currency)

	case "withdraw":
		account, err := svc.Withdraw(ctx, parseID(args, 1), parseAmount(args, 2))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("New balance: %s %s\n", account.BalanceDecimal().StringFixed(2), account.Currency)

	case "delete":
		id := parseID(args, 1)
		if err := svc.Delete(ctx, id); err != nil {
			fatal(err)
		}
		fmt.Printf("Deleted account %s\n", id)

	default:
		usage()
		os.Exit(1)
	}
}

func parseID(args []string, pos int) uuid.UUID {
	if len(args) <= pos {
		fatalf("missing account id")
	}
	id, err := uuid.Parse(args[pos])
	if err != nil {
		fatalf("invalid account id: %s", args[pos])
	}
	return id
}

func parseAmount(args []string, pos int) decimal.Decimal {
	if len(args) <= pos {
		fatalf("missing amount")
	}
	amount, err := decimal.NewFromString(args[pos])
	if err != nil {
		fatalf("invalid amount: %s", args[pos])
	}
	return amount
}

func printTable(accounts []*domain.Account) {
	if len(accounts) == 0 {
		fmt.Println("No accounts.")
		return
	}
	header := color.New(color.FgCyan, color.Bold)
	header.Printf("%-36s  %-20s  %12s  %-8s  %s\n", "ID", "NAME", "BALANCE", "CURRENCY", "CREATED")
	for _, a := range accounts {
		fmt.Printf("%-36s  %-20s  %12s  %-8s  %s\n",
			a.ID, a.Name, a.BalanceDecimal().StringFixed(2), a.Currency,
			a.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printAccount(a *domain.Account) {
	fmt.Printf("ID:        %s\n", a.ID)
	fmt.Printf("Name:      %s\n", a.Name)
	fmt.Printf("Balance:   %s %s\n", a.BalanceDecimal().StringFixed(2), a.Currency)
	fmt.Printf("Created:   %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:   %s\n", a.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
