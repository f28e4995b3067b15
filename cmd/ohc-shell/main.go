// Command ohc-shell is an interactive REPL over a single in-process
// hashentry.Engine, useful for poking at the engine's behavior by hand.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ohcgo/ohc/arena"
	"github.com/ohcgo/ohc/hashentry"
	"github.com/ohcgo/ohc/keyhash"
	"github.com/ohcgo/ohc/mem"
	"github.com/ohcgo/ohc/partition"
	"github.com/peterh/liner"
	"github.com/spf13/pflag"
)

const historyFile = ".ohc-shell_history"

func main() {
	var (
		arenaSize      = pflag.Int64("arena-size", 16<<20, "arena size in bytes")
		blockSize      = pflag.Int("block-size", 1024, "block size in bytes")
		partitionCount = pflag.Int("partitions", 64, "number of partitions")
	)
	pflag.Parse()

	layout, err := hashentry.NewLayout(*blockSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "layout:", err)
		os.Exit(1)
	}
	a, err := arena.New(int(*arenaSize), layout.BlockSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "arena:", err)
		os.Exit(1)
	}
	defer a.Close()

	table, err := partition.NewTable(*partitionCount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "partitions:", err)
		os.Exit(1)
	}

	eng := hashentry.NewEngine(hashentry.Config{
		Layout:     layout,
		Allocator:  a,
		Accessor:   mem.NewAccessor(),
		Partitions: table,
	})

	sh := &shell{eng: eng, table: table, arena: a}
	sh.run()
}

type shell struct {
	eng   *hashentry.Engine
	table *partition.Table
	arena *arena.Arena
}

func (sh *shell) run() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt("ohc> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if !sh.dispatch(strings.Fields(input)) {
			return
		}
	}
}

func (sh *shell) dispatch(fields []string) bool {
	switch fields[0] {
	case "quit", "exit":
		return false
	case "help":
		fmt.Println("commands: set <key> <value> | get <key> | promote <key> | lengths | stats | clear | quit")
	case "set":
		sh.cmdSet(fields)
	case "get":
		sh.cmdGet(fields)
	case "promote":
		sh.cmdPromote(fields)
	case "lengths":
		sh.cmdLengths()
	case "stats":
		sh.cmdStats()
	case "clear":
		sh.eng.RemoveAll()
		fmt.Println("ok")
	default:
		fmt.Printf("unknown command %q, try 'help'\n", fields[0])
	}
	return true
}

func (sh *shell) cmdSet(fields []string) {
	if len(fields) != 3 {
		fmt.Println("usage: set <key> <value>")
		return
	}
	key := []byte(fields[1])
	value := []byte(fields[2])
	hash := keyhash.Sum64(key)

	p := sh.table.LockForHash(hash)
	defer sh.table.Unlock(p)

	if existing := sh.eng.FindEntry(p, hash, hashentry.NewArraySource(key)); existing != 0 {
		sh.eng.Unlink(p, existing)
		sh.eng.FreeEntry(existing)
	}
	head := sh.eng.CreateEntry(hash, hashentry.NewArraySource(key), hashentry.NewArraySource(value))
	if head == 0 {
		fmt.Println("error: allocation failed")
		return
	}
	sh.eng.AddAsHead(p, head)
	fmt.Println("ok")
}

func (sh *shell) cmdGet(fields []string) {
	if len(fields) != 2 {
		fmt.Println("usage: get <key>")
		return
	}
	key := []byte(fields[1])
	hash := keyhash.Sum64(key)

	p := sh.table.LockForHash(hash)
	head := sh.eng.FindEntry(p, hash, hashentry.NewArraySource(key))
	sh.table.Unlock(p)

	if head == 0 {
		fmt.Println("(not found)")
		return
	}
	var sink hashentry.ByteSink
	if err := sh.eng.WriteValueToSink(head, &sink); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(sink.Bytes()))
}

func (sh *shell) cmdPromote(fields []string) {
	if len(fields) != 2 {
		fmt.Println("usage: promote <key>")
		return
	}
	key := []byte(fields[1])
	hash := keyhash.Sum64(key)

	p := sh.table.LockForHash(hash)
	defer sh.table.Unlock(p)
	head := sh.eng.FindEntry(p, hash, hashentry.NewArraySource(key))
	if head == 0 {
		fmt.Println("(not found)")
		return
	}
	sh.eng.PromoteToHead(p, head)
	fmt.Println("ok")
}

func (sh *shell) cmdLengths() {
	lens := sh.eng.LRULengths()
	for i, n := range lens {
		if n == 0 {
			continue
		}
		fmt.Printf("%d: %d\n", i, n)
	}
}

func (sh *shell) cmdStats() {
	s := sh.arena.Stats()
	fmt.Printf("blocks: total=%d used=%d free=%d\n", s.Total, s.Used, s.Free)
}
