// namesweep-cli is a command-line client for driving a namesweepd daemon.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/namesweep/namesweep/internal/rpc"
	"github.com/namesweep/namesweep/internal/rpcclient"
	"github.com/namesweep/namesweep/internal/session"
	"github.com/namesweep/namesweep/pkg/types"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	rpcURL := "http://127.0.0.1:8720"
	network := "mainnet"

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	// Set address HRP based on network.
	if network == "testnet" {
		types.SetAddressHRP(types.TestnetHRP)
	} else {
		types.SetAddressHRP(types.MainnetHRP)
	}

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	client := rpcclient.New(rpcURL)
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "status":
		cmdStatus(client)
	case "connect":
		cmdConnect(client, cmdArgs)
	case "import":
		cmdImport(client)
	case "clear":
		cmdClear(client)
	case "accounts":
		cmdAccounts(client, cmdArgs)
	case "names":
		cmdNames(client, cmdArgs)
	case "balance":
		cmdBalance(client)
	case "fee":
		cmdFee(client, cmdArgs)
	case "transfer":
		cmdTransfer(client, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: namesweep-cli [global flags] <command> [args]

Global flags:
  --rpc <url>        RPC endpoint (default: http://127.0.0.1:8720)
  --network <net>    mainnet (default) or testnet

Commands:
  status                     Show session status
  connect <address>          Connect and set the sweep destination
  import                     Import a seed phrase (prompted, hidden)
  clear                      Discard all wallet material
  accounts [--page <n>]      List derived accounts (10 per page)
  names <index>              Look up name holdings of an account
  balance                    Show the sponsor account balance
  fee [<amount>]             Show or set the transfer fee (coins)
  transfer <index>           Sweep the account's name to the destination
`)
}

func cmdStatus(client *rpcclient.Client) {
	var st session.Status
	if err := client.Call("session_status", nil, &st); err != nil {
		fatal("session_status: %v", err)
	}
	printStatus(st)
}

func cmdConnect(client *rpcclient.Client, args []string) {
	if len(args) != 1 {
		fatal("usage: connect <address>")
	}
	var st session.Status
	if err := client.Call("session_connect", rpc.ConnectParam{Destination: args[0]}, &st); err != nil {
		fatal("session_connect: %v", err)
	}
	printStatus(st)
}

func cmdImport(client *rpcclient.Client) {
	phrase, err := readHidden("Enter seed phrase: ")
	if err != nil {
		fatal("read phrase: %v", err)
	}
	var st session.Status
	if err := client.Call("session_importSeed", rpc.ImportSeedParam{Phrase: phrase}, &st); err != nil {
		fatal("session_importSeed: %v", err)
	}
	fmt.Printf("Imported: %d account(s)\n", st.Accounts)
}

func cmdClear(client *rpcclient.Client) {
	var st session.Status
	if err := client.Call("session_clear", nil, &st); err != nil {
		fatal("session_clear: %v", err)
	}
	fmt.Println("Cleared")
}

func cmdAccounts(client *rpcclient.Client, args []string) {
	page := 0
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--page" && i+1 < len(args):
			page = atoi(args[i+1])
			i++
		case strings.HasPrefix(args[i], "--page="):
			page = atoi(args[i][len("--page="):])
		}
	}

	var params interface{}
	if page > 0 {
		params = rpc.PageParam{Page: page}
	}
	var list rpc.ListAccountsResult
	if err := client.Call("wallet_listAccounts", params, &list); err != nil {
		fatal("wallet_listAccounts: %v", err)
	}

	fmt.Printf("Accounts: %d (page %d/%d)\n", list.Total, list.Page, list.Pages)
	for _, acc := range list.Accounts {
		line := fmt.Sprintf("  #%-3d %s", acc.Index, acc.Address)
		if acc.Username != "" {
			line += "  " + acc.Username
		}
		fmt.Println(line)
	}
}

func cmdNames(client *rpcclient.Client, args []string) {
	if len(args) != 1 {
		fatal("usage: names <index>")
	}
	var res rpc.LookupResult
	if err := client.Call("names_lookup", rpc.AccountParam{Index: uint32(atoi(args[0]))}, &res); err != nil {
		fatal("names_lookup: %v", err)
	}

	switch res.Kind {
	case "none":
		fmt.Println("No names")
	case "single":
		fmt.Printf("Name: %s\n", res.FullName)
		if res.IDResolved {
			fmt.Printf("ID:   %d\n", res.ID)
		} else {
			fmt.Println("ID:   unresolved")
		}
		fmt.Printf("Eligible for transfer: %v\n", res.Eligible)
	case "many":
		fmt.Printf("%d names; manage at %s\n", res.Count, res.ManageURL)
	}
}

func cmdBalance(client *rpcclient.Client) {
	var res rpc.BalanceResult
	if err := client.Call("sponsor_getBalance", nil, &res); err != nil {
		fatal("sponsor_getBalance: %v", err)
	}
	fmt.Printf("Sponsor: %s\n", res.Address)
	fmt.Printf("Balance: %d\n", res.Balance)
}

func cmdFee(client *rpcclient.Client, args []string) {
	if len(args) == 0 {
		var st session.Status
		if err := client.Call("session_status", nil, &st); err != nil {
			fatal("session_status: %v", err)
		}
		fmt.Printf("Fee: %s\n", st.Fee)
		return
	}
	var res rpc.FeeResult
	if err := client.Call("transfer_setFee", rpc.FeeParam{Fee: args[0]}, &res); err != nil {
		fatal("transfer_setFee: %v", err)
	}
	fmt.Printf("Fee: %s\n", res.Fee)
}

func cmdTransfer(client *rpcclient.Client, args []string) {
	if len(args) != 1 {
		fatal("usage: transfer <index>")
	}
	var res rpc.SendResult
	if err := client.Call("transfer_send", rpc.AccountParam{Index: uint32(atoi(args[0]))}, &res); err != nil {
		fatal("transfer_send: %v", err)
	}
	fmt.Printf("Sent: %s\n", res.TxID)
}

func printStatus(st session.Status) {
	fmt.Printf("Network:     %s\n", st.Network)
	fmt.Printf("Connected:   %v\n", st.Connected)
	fmt.Printf("Wallet:      %v\n", st.HasWallet)
	if st.HasWallet {
		fmt.Printf("Accounts:    %d (page %d/%d)\n", st.Accounts, st.Page, st.Pages)
		fmt.Printf("Fee:         %s\n", st.Fee)
	}
	if st.Destination != "" {
		fmt.Printf("Destination: %s\n", st.Destination)
	}
}

// readHidden prompts on stderr and reads a line without echoing. The seed
// phrase never appears on screen or in shell history.
func readHidden(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fatal("not a number: %s", s)
	}
	return n
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
