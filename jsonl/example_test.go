package jsonl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/absfs/miscfs"
	"github.com/absfs/miscfs/jsonl"
)

func Example() {
	mfs, err := miscfs.New(miscfs.NewMemFS(), nil)
	if err != nil {
		log.Fatal(err)
	}
	err = mfs.Write("points.jsonl.xz", []byte("[1,2]\n[987,666]\n[0,0]\n"))
	if err != nil {
		log.Fatal(err)
	}

	it := jsonl.ParseContext[[2]int](context.Background(), mfs, "points.jsonl.xz", jsonl.DefaultBatchSize)
	defer it.Close()

	for p, err := range it.All() {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(p[0], p[1])
	}
	fmt.Println("completed:", it.Completed())
	// Output:
	// 1 2
	// 987 666
	// 0 0
	// completed: true
}
