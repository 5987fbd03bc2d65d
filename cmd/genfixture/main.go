// Command genfixture synthesizes XML documents for exercising the
// conversion pipeline at scale, streaming output so its own memory use
// stays O(1) regardless of how many records are requested.
package main

import (
	"bufio"
	"encoding/xml"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v6"
)

type orderItem struct {
	XMLName xml.Name `xml:"item"`
	SKU     string   `xml:"sku,attr"`
	Qty     int      `xml:"qty,attr"`
	Name    string   `xml:"name"`
}

type order struct {
	XMLName  xml.Name    `xml:"order"`
	ID       string      `xml:"id,attr"`
	Customer string      `xml:"customer"`
	Email    string      `xml:"email"`
	Items    []orderItem `xml:"item"`
}

func main() {
	count := flag.Int("count", 1000, "number of <order> records to generate")
	outPath := flag.String("out", "", "output file (defaults to stdout)")
	seed := flag.Int64("seed", 0, "deterministic fixture seed (0 picks a random one)")
	flag.Parse()

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	w := bufio.NewWriterSize(out, 64*1024)
	defer w.Flush()

	fmt.Fprintln(w, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(w, `<orders>`)

	enc := xml.NewEncoder(w)
	for i := 0; i < *count; i++ {
		rec := randomOrder(i)
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, `</orders>`)
}

func randomOrder(i int) order {
	itemCount := 1 + gofakeit.Number(0, 4)
	items := make([]orderItem, itemCount)
	for j := range items {
		items[j] = orderItem{
			SKU:  gofakeit.LetterN(3) + fmt.Sprint(gofakeit.Number(100, 999)),
			Qty:  gofakeit.Number(1, 20),
			Name: gofakeit.ProductName(),
		}
	}
	return order{
		ID:       fmt.Sprintf("ord-%d", i),
		Customer: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Items:    items,
	}
}
