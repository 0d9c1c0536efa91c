// Command benchrun runs the micro benchmarks in bench/ followed by perft and
// search throughput runs. Usage: go run ./cmd/benchrun
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var perftRuns = []struct {
	label string
	fen   string
	depth string
}{
	{"Initial", "", "3"},
	{"Initial", "", "4"},
	{"Initial", "", "5"},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "3"},
	{"KRK", "8/8/4k3/8/8/3K4/3R4/8 w - - 0 1", "5"},
}

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func main() {
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, r := range perftRuns {
		args := []string{"run", "./cmd/perft", "-depth", r.depth, "-label", r.label}
		if r.fen != "" {
			args = append(args, "-fen", r.fen)
		}
		_ = run("go", args...)
	}

	fmt.Println("\nSearch:")
	_ = run("go", "run", "./cmd/searchbench", "-depth", "3", "-maxdepth", "5", "-repeat", "3")
}
