// Command gendata generates randomized JMeter test data (order id, payment
// password, amount) as CSV for stress-testing the payment simulator.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"
)

// Password pool weighted towards the valid test credential so a realistic
// share of validation calls succeeds.
var passwordPool = []string{
	"123456",
	"123456",
	"123456",
	"111111",
	"000000",
	"888888",
	"666666",
	"123123",
	"password",
	"1234",
	"12345678",
}

type amountBand struct {
	min, max float64
	weight   float64
	label    string
}

// Small amounts dominate, mirroring real checkout traffic.
var amountBands = []amountBand{
	{10.00, 50.00, 0.40, "small (10-50)"},
	{50.00, 200.00, 0.30, "medium (50-200)"},
	{200.00, 500.00, 0.20, "large (200-500)"},
	{500.00, 1000.00, 0.08, "high (500-1000)"},
	{1000.00, 5000.00, 0.02, "very high (1000+)"},
}

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type record struct {
	orderId  string
	password string
	amount   float64
}

func main() {
	numRecords := flag.Int("n", 1000, "number of test records to generate")
	output := flag.String("o", "jmeter_test_data.csv", "output filename")
	seed := flag.Int64("seed", 0, "random seed for reproducible test data (0 = time-based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	} else {
		fmt.Printf("using random seed: %d\n", *seed)
	}
	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("generating %d test data records...\n", *numRecords)
	records := make([]record, 0, *numRecords)
	for i := 0; i < *numRecords; i++ {
		records = append(records, record{
			orderId:  orderId(rng, i+1),
			password: passwordPool[rng.Intn(len(passwordPool))],
			amount:   amount(rng),
		})
	}

	if err := writeCSV(*output, records); err != nil {
		fmt.Fprintf(os.Stderr, "error saving file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("test data saved to file: %s\n", *output)
	showStatistics(records)
}

// orderId produces an indexed id with a random suffix, matching the format
// the simulator mints for live orders.
func orderId(rng *rand.Rand, index int) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rng.Intn(len(suffixAlphabet))]
	}
	return fmt.Sprintf("ORDER%06d%s", index, suffix)
}

func amount(rng *rand.Rand) float64 {
	r := rng.Float64()
	cumulative := 0.0
	band := amountBands[len(amountBands)-1]
	for _, b := range amountBands {
		cumulative += b.weight
		if r < cumulative {
			band = b
			break
		}
	}
	v := band.min + rng.Float64()*(band.max-band.min)
	rounded, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", v), 64)
	return rounded
}

func writeCSV(filename string, records []record) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"order_id", "password", "amount"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write([]string{r.orderId, r.password, fmt.Sprintf("%.2f", r.amount)}); err != nil {
			return err
		}
	}
	return nil
}

func showStatistics(records []record) {
	fmt.Println("\n=== test data statistics ===")
	fmt.Printf("total records: %d\n", len(records))

	passwordCounts := make(map[string]int)
	for _, r := range records {
		passwordCounts[r.password]++
	}
	passwords := make([]string, 0, len(passwordCounts))
	for p := range passwordCounts {
		passwords = append(passwords, p)
	}
	sort.Slice(passwords, func(i, j int) bool {
		return passwordCounts[passwords[i]] > passwordCounts[passwords[j]]
	})
	fmt.Println("\npassword distribution:")
	for _, p := range passwords {
		count := passwordCounts[p]
		fmt.Printf("  %s: %d times (%.1f%%)\n", p, count, float64(count)/float64(len(records))*100)
	}

	minAmount, maxAmount, sum := records[0].amount, records[0].amount, 0.0
	for _, r := range records {
		if r.amount < minAmount {
			minAmount = r.amount
		}
		if r.amount > maxAmount {
			maxAmount = r.amount
		}
		sum += r.amount
	}
	fmt.Println("\namount statistics:")
	fmt.Printf("  min: %.2f\n  max: %.2f\n  average: %.2f\n", minAmount, maxAmount, sum/float64(len(records)))

	fmt.Println("\namount band distribution:")
	for _, b := range amountBands {
		count := 0
		for _, r := range records {
			if r.amount >= b.min && r.amount < b.max {
				count++
			}
		}
		fmt.Printf("  %s: %d times (%.1f%%)\n", b.label, count, float64(count)/float64(len(records))*100)
	}
}
