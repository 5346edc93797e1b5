// Command tester is an interactive line-protocol client for poking a
// running ConnectSphere server from a terminal: type free text to chat,
// or any /pm, /typing, /pmtyping, /reaction, /reaction_public command.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/AJYORK88/ConnectSphere-Online/protocol"
)

type Config struct {
	ServerAddr string `env:"SERVER_ADDR,default=localhost:5555"`
	Colours    bool   `env:"TESTER_COLOURS,default=true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	conn, err := net.Dial("tcp", config.ServerAddr)
	if err != nil {
		return fmt.Errorf("cannot reach server at %s: %w", config.ServerAddr, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		render(conn, config.Colours)
	}()

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		if _, err := fmt.Fprintf(conn, "%s\n", stdin.Text()); err != nil {
			break
		}
	}
	<-done
	return nil
}

// render pretty-prints every server line until the connection drops.
func render(conn net.Conn, colours bool) {
	paint := func(c color.Color, text string) string {
		if colours {
			return c.Render(text)
		}
		return text
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == protocol.SubmitName:
			fmt.Println(paint(color.FgYellow, ">> the server asks for a username; type one and press enter"))
		case strings.HasPrefix(line, protocol.NameAcceptedPrefix+" "):
			fmt.Println(paint(color.FgGreen, ">> welcome, "+line[len(protocol.NameAcceptedPrefix)+1:]))
		case strings.HasPrefix(line, protocol.UserListPrefix+" "):
			printUserList(line[len(protocol.UserListPrefix)+1:])
		case strings.HasPrefix(line, protocol.MessagePrefix+" "):
			fmt.Println(line[len(protocol.MessagePrefix)+1:])
		case strings.HasPrefix(line, protocol.TypingPrefix+" "),
			strings.HasPrefix(line, protocol.PMTypingPrefix+" "):
			fmt.Println(paint(color.FgDarkGray, ".. "+line))
		case strings.HasPrefix(line, protocol.PublicReactPrefix+" "),
			strings.HasPrefix(line, protocol.ReactionPrefix+" "):
			fmt.Println(paint(color.FgMagenta, ".. "+line))
		default:
			fmt.Println(line)
		}
	}
	fmt.Println(paint(color.FgRed, ">> connection closed"))
}

func printUserList(csv string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Online users"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, name := range strings.Split(csv, ",") {
		table.Append([]string{name})
	}
	table.Render()
}
