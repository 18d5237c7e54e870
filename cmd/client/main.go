package main

import (
	"bufio"
	"docsync/client"
	"docsync/protocol"
	"fmt"
	"os"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"BROKER_ADDR,default=localhost:9999"`
	Username      string `env:"BROKER_USERNAME"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	stdin := bufio.NewScanner(os.Stdin)
	username := config.Username
	for username == "" {
		fmt.Print("display name: ")
		if !stdin.Scan() {
			return exitOK, nil
		}
		username = strings.TrimSpace(stdin.Text())
	}

	c, err := client.Dial(config.ServerAddress, log)
	if err != nil {
		return exitRuntime, err
	}
	defer c.Close()

	if err := c.Login(username); err != nil {
		return exitRuntime, err
	}
	color.Green.Printf("logged in as %s\n", username)

	go receive(c)

	printHelp()
	for stdin.Scan() {
		if !dispatch(c, stdin.Text()) {
			break
		}
	}
	return exitOK, nil
}

// receive renders broker frames until the connection closes.
func receive(c *client.Client) {
	for {
		msgType, param1, param2, err := c.Recv()
		if err != nil {
			color.Red.Println("connection closed")
			os.Exit(exitRuntime)
		}
		switch msgType {
		case protocol.TypeUserJoined:
			color.Green.Printf("* %s joined\n", param1)
		case protocol.TypeUserLeft:
			color.Yellow.Printf("* %s left\n", param1)
		case protocol.TypeListFilesResponse:
			renderFileList(param1)
		case protocol.TypeOpenFileResponse, protocol.TypeEdit:
			color.Cyan.Printf("--- %s ---\n", param1)
			fmt.Println(strings.ReplaceAll(param2, `\n`, "\n"))
		case protocol.TypeListFilesRequest:
			// the broker nudges everyone after a create; comply
			_ = c.ListFiles()
		case protocol.TypeSuccess:
			color.Green.Println(param1)
		case protocol.TypeError:
			color.Red.Printf("%s: %s\n", param1, param2)
		}
	}
}

func renderFileList(csv string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Document"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, name := range strings.Split(csv, ",") {
		if name != "" {
			table.Append([]string{name})
		}
	}
	table.Render()
}

func printHelp() {
	fmt.Println("commands: /list | /open <name> | /create <name> | /save <name> <content> | /edit <name> <content> | /quit")
}

// dispatch interprets one input line; returns false to quit.
func dispatch(c *client.Client, line string) bool {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
	var err error
	switch fields[0] {
	case "/quit":
		return false
	case "/list":
		err = c.ListFiles()
	case "/open":
		if len(fields) < 2 {
			printHelp()
			return true
		}
		err = c.OpenFile(fields[1])
	case "/create":
		if len(fields) < 2 {
			printHelp()
			return true
		}
		err = c.CreateFile(fields[1])
	case "/save":
		if len(fields) < 3 {
			printHelp()
			return true
		}
		err = c.SaveFile(fields[1], fields[2])
	case "/edit":
		if len(fields) < 3 {
			printHelp()
			return true
		}
		err = c.Edit(fields[1], fields[2])
	case "":
	default:
		printHelp()
	}
	if err != nil {
		color.Red.Printf("send failed: %v\n", err)
	}
	return true
}
