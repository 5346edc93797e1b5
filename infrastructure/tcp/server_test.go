package tcp_test

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
	"github.com/AJYORK88/ConnectSphere-Online/infrastructure/tcp"
	"github.com/AJYORK88/ConnectSphere-Online/moderation"
	"github.com/AJYORK88/ConnectSphere-Online/runtime"
)

// startServer boots a full server on an ephemeral port and returns its
// address. Router and accept loop are torn down with the test.
func startServer(t *testing.T) string {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	moderator, err := moderation.NewModerator(nil, '*', log)
	require.NoError(t, err)
	router := runtime.NewRouter(log, runtime.NewRegistry(), domain.NewHistory(50), moderator, 16)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = router.Run(ctx) }()

	server := tcp.NewServer(log, listener, router)
	go func() { _ = server.Run(ctx) }()

	return listener.Addr().String()
}

type testClient struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func dialClient(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{t: t, conn: conn, r: bufio.NewReader(conn)}
}

func (c *testClient) send(line string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(c.t, err)
}

func (c *testClient) readLine() string {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := c.r.ReadString('\n')
	require.NoError(c.t, err)
	return strings.TrimSuffix(line, "\n")
}

// collectUntilUserList reads lines up to and including the next USERLIST
// broadcast, which terminates every join and leave sequence.
func (c *testClient) collectUntilUserList() []string {
	c.t.Helper()
	var lines []string
	for {
		line := c.readLine()
		lines = append(lines, line)
		if strings.HasPrefix(line, "USERLIST ") {
			return lines
		}
	}
}

// joinAs runs the name negotiation and returns everything delivered from
// NAMEACCEPTED up to the user-list broadcast.
func (c *testClient) joinAs(name string) []string {
	c.t.Helper()
	require.Equal(c.t, "SUBMITNAME", c.readLine())
	c.send(name)
	return c.collectUntilUserList()
}

func TestServer_JoinAndPublicChat(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	req.Equal([]string{
		"NAMEACCEPTED Alice",
		"MESSAGE Alice joined the chat",
		"USERLIST Alice",
	}, alice.joinAs("Alice"))

	alice.send("hello room")

	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] Alice: hello room$`, alice.readLine())
}

func TestServer_NameNegotiationReprompts(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	alice.joinAs("Alice")

	bob := dialClient(t, addr)
	req.Equal("SUBMITNAME", bob.readLine())

	// Whitespace-only candidates are ignored and re-prompted
	bob.send("   ")
	req.Equal("SUBMITNAME", bob.readLine())

	// The taken name differs only in case and is still rejected
	bob.send("alice")
	req.Equal("SUBMITNAME", bob.readLine())

	bob.send("Bob")
	req.Equal([]string{
		"NAMEACCEPTED Bob",
		"MESSAGE Bob joined the chat",
		"USERLIST Alice,Bob",
	}, bob.collectUntilUserList())
}

func TestServer_PrivateMessageBetweenClients(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	alice.joinAs("Alice")
	bob := dialClient(t, addr)
	bob.joinAs("Bob")
	// Alice still has Bob's join broadcasts pending
	alice.collectUntilUserList()

	alice.send("/pm Bob psst")

	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] \(Private from Alice\): psst$`, bob.readLine())
	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] \(Private to Bob\): psst$`, alice.readLine())
}

func TestServer_LateJoinerReceivesHistory(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	alice.joinAs("Alice")
	alice.send("hello")
	// Reading back the broadcast guarantees the append happened
	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] Alice: hello$`, alice.readLine())

	bob := dialClient(t, addr)
	lines := bob.joinAs("Bob")

	req.Len(lines, 4)
	req.Equal("NAMEACCEPTED Bob", lines[0])
	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] Alice: hello$`, lines[1])
	req.Equal("MESSAGE Bob joined the chat", lines[2])
	req.Equal("USERLIST Alice,Bob", lines[3])
}

func TestServer_DisconnectBroadcastsLeave(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	alice.joinAs("Alice")
	bob := dialClient(t, addr)
	bob.joinAs("Bob")
	alice.collectUntilUserList()

	req.NoError(bob.conn.Close())

	req.Equal([]string{
		"MESSAGE Bob left the chat",
		"USERLIST Alice",
	}, alice.collectUntilUserList())
}

func TestServer_MalformedCommandsAreDropped(t *testing.T) {
	req := require.New(t)
	addr := startServer(t)

	alice := dialClient(t, addr)
	alice.joinAs("Alice")

	// A broken typing command is dropped; the next real message proves the
	// session survived it
	alice.send("/typing sideways")
	alice.send("still here")

	req.Regexp(`^MESSAGE \[\d{2}:\d{2}:\d{2}\] Alice: still here$`, alice.readLine())
}
