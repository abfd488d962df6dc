package esx

import (
	"fmt"
	"log"
)

func ExampleOpen() {
	doc := New(NewPCMFormat(8000, 8, 1))

	table := doc.PatternMapTable()
	table.Append(PatternMap{Source: 0, Destination: 1})
	table.Append(PatternMap{Source: 2, Destination: 3})

	data, err := doc.Save()
	if err != nil {
		log.Fatal(err)
	}

	reopened, err := Open(data)
	if err != nil {
		log.Fatal(err)
	}

	src, err := reopened.PatternMapTable().Get(1, FieldSource)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("rows: %d, row 1 source: %d\n", reopened.PatternMapTable().RowCount(), src)
	// Output: rows: 2, row 1 source: 2
}

func ExamplePatternMapTable_Set() {
	doc := New(NewPCMFormat(8000, 8, 1))
	table := doc.PatternMapTable()
	table.Append(PatternMap{Source: 0, Destination: 1})

	if err := table.Set(0, FieldDestination, 70000); err != nil {
		fmt.Println("rejected:", err)
	}

	dst, _ := table.Get(0, FieldDestination)
	fmt.Println("destination:", dst)
	// Output:
	// rejected: 70000 not in 0..65535: value out of range
	// destination: 1
}
