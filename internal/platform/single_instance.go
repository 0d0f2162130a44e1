package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateMessage = "activate"
	dialTimeout     = 500 * time.Millisecond
)

// InstanceGuard holds the single-instance lock. While held it listens for
// later launches asking the running instance to come to front.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance attempts to bind a deterministic localhost port. When
// another instance holds it, that instance is asked to activate and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return acquireOnPort(appName, portFromName(appName))
}

func acquireOnPort(appName string, port int) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if activateErr := activate(address, appName); activateErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, activateErr)
		}
		return nil, ErrAlreadyRunning
	}
	guard := &InstanceGuard{
		listener: listener,
		address:  address,
		done:     make(chan struct{}),
	}
	go guard.serve(appName)
	return guard, nil
}

// SetOnActivate registers the handler run when a second launch is attempted.
// The handler runs on the guard's goroutine.
func (guard *InstanceGuard) SetOnActivate(handler func()) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.onActivate = handler
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve(appName string) {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn, appName)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn, appName string) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	if strings.TrimSpace(line) != activateLine(appName) {
		return
	}
	guard.mu.Lock()
	handler := guard.onActivate
	guard.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func activate(address, appName string) error {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	if _, err := fmt.Fprintln(conn, activateLine(appName)); err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return nil
}

func activateLine(appName string) string {
	return activateMessage + " " + appName
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
