package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"udscan/canbus"
	"udscan/client"
	"udscan/config"
	"udscan/logging"
	"udscan/metrics"
	"udscan/respslot"
	"udscan/service"
	"udscan/services"
	"udscan/utils"
)

// uiCommand is one request enqueued by the UI/event source onto the
// bounded request channel.
type uiCommand struct {
	name string
	args []byte
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	l := logging.NewLogger(level)
	services.Register(services.ServiceLogger, l)
	metricsSrv := metrics.Serve(cfg.MetricsAddr)
	services.Register(services.ServiceMetrics, metricsSrv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	sock, err := openAdapter(cfg)
	if err != nil {
		l.Errorf("opening CAN adapter: %v", err)
		os.Exit(1)
	}
	tx, rx := sock.Split()

	slot := respslot.New(cfg.Timeout)
	uds := client.New(tx, canbus.ID(cfg.RequestID), slot)
	broadcaster := canbus.NewBroadcaster(func(f canbus.Frame) {
		l.WithFrame(uint32(f.ID), int(f.DLC)).Debug("broadcaster dropped frame for slow subscriber")
	})

	// request task: bounded UI/event-source channel, capacity ~10.
	requests := make(chan uiCommand, 10)

	go receiveTask(ctx, rx, slot, broadcaster, cfg.ResponseFilter, l)
	go requestTask(ctx, uds, requests, l)
	go signalTask(ctx, cancel, signalChan, l)

	readUICommands(ctx, requests, l)

	l.Info("shutting down")
	if err := sock.Close(); err != nil {
		l.Errorf("closing CAN adapter: %v", err)
	}
	_ = metricsSrv.Shutdown(context.Background())
}

func openAdapter(cfg *config.Config) (canbus.Socket, error) {
	switch cfg.Adapter {
	case config.AdapterSerial:
		return canbus.OpenSerial()
	default:
		return canbus.OpenSocketCAN(cfg.Interface)
	}
}

// receiveTask polls the CAN socket with a short per-iteration timeout,
// decoding any received payload into the response slot and broadcasting
// the raw frame to any observers, then yields.
func receiveTask(ctx context.Context, rx canbus.Rx, slot *respslot.Slot, broadcaster *canbus.Broadcaster, responseFilter uint32, l *logging.Logger) {
	const pollInterval = 10 * time.Millisecond
	const filterMask = 0x7F0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := rx.ReceiveWithTimeout(pollInterval)
		if err != nil {
			continue
		}
		l.WithFrame(uint32(frame.ID), int(frame.DLC)).Debug("received frame")

		broadcaster.Broadcast(frame)

		if uint32(frame.ID)&filterMask != responseFilter&filterMask {
			continue
		}
		slot.Update(frame.Payload())
	}
}

// requestTask owns the UdsClient and dispatches enqueued commands to the
// service layer.
func requestTask(ctx context.Context, uds *client.Client, requests <-chan uiCommand, l *logging.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-requests:
			dispatch(uds, cmd, l)
		}
	}
}

func dispatch(uds *client.Client, cmd uiCommand, l *logging.Logger) {
	switch cmd.name {
	case "reset1":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID1))
	case "reset2":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID2))
	case "reset3":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID3))
	case "reset4":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID4))
	case "reset5":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID5))
	case "reset6":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID6))
	case "reset7":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID7))
	case "reset8":
		reportErr(l, service.ECUReset(uds, service.ECUResetSubID8))
	case "realtime-slow":
		data, err := service.ReadDataByPeriodicIdentifierStart(uds, service.RateSlow)
		reportData(l, data, err)
	case "realtime-medium":
		data, err := service.ReadDataByPeriodicIdentifierStart(uds, service.RateMedium)
		reportData(l, data, err)
	case "realtime-fast":
		data, err := service.ReadDataByPeriodicIdentifierStart(uds, service.RateFast)
		reportData(l, data, err)
	case "realtime-stop":
		reportErr(l, service.ReadDataByPeriodicIdentifierStop(uds))
	case "raw":
		reportErr(l, uds.SendRaw(cmd.args))
	default:
		l.Warnf("unknown command: %s", cmd.name)
	}
}

func reportErr(l *logging.Logger, err error) {
	if err != nil {
		l.Errorf("command failed: %v", err)
	}
}

func reportData(l *logging.Logger, data []byte, err error) {
	if err != nil {
		l.Errorf("command failed: %v", err)
		return
	}
	l.Infof("received %d bytes: % X", len(data), data)
}

func signalTask(ctx context.Context, cancel context.CancelFunc, signalChan <-chan os.Signal, l *logging.Logger) {
	select {
	case <-ctx.Done():
	case <-signalChan:
		l.Info("received shutdown signal, canceling context and cleaning up...")
		cancel()
	}
}

// readUICommands is the UI/event source: a minimal line-oriented CLI that
// enqueues one command per supported sub-id, blocking until ctx is
// canceled or stdin is closed. Exact wire/CLI mapping is out of scope; this is the simplest
// possible command surface satisfying it.
func readUICommands(ctx context.Context, requests chan<- uiCommand, l *logging.Logger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			cmd, args, err := parseUILine(line)
			if err != nil {
				l.Warnf("invalid command: %v", err)
				continue
			}
			select {
			case requests <- uiCommand{name: cmd, args: args}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func parseUILine(line string) (string, []byte, error) {
	if len(line) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	sp := -1
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			sp = i
			break
		}
	}
	if sp < 0 {
		return line, nil, nil
	}
	name := line[:sp]
	rest := line[sp+1:]
	data, err := utils.HexStringToByteArray(rest)
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}
