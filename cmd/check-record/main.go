// Command check-record prints one raw Firestore document and shows how the
// dashboard reads its loosely typed fields.
//
//	STORE_BACKEND=firestore check-record -collection orders -id 1042
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/rentwise/admin-dashboard/internal/platform/config"
	firestoreclient "github.com/rentwise/admin-dashboard/internal/platform/firestore"
	"github.com/rentwise/admin-dashboard/pkg/model"
	"github.com/rentwise/admin-dashboard/pkg/util"
)

// amountFields names the numeric field each collection aggregates.
var amountFields = map[string]string{
	"users":   "total_spend",
	"vendors": "revenue",
	"orders":  "total_amount",
}

func main() {
	collection := flag.String("collection", "orders", "users, vendors or orders")
	rawID := flag.String("id", "", "numeric id field or document name")
	flag.Parse()

	if _, ok := amountFields[*collection]; !ok || *rawID == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		fatalf("config load: %v", err)
	}

	ctx := context.Background()
	client, _, err := firestoreclient.New(ctx, cfg.FirebaseProjectID, cfg)
	if err != nil {
		fatalf("firestore init: %v", err)
	}
	defer client.Close()

	doc, err := lookup(ctx, client.Collection(*collection), *rawID)
	if err != nil {
		fatalf("lookup: %v", err)
	}
	report(*collection, doc)
}

func lookup(ctx context.Context, col *firestore.CollectionRef, rawID string) (*firestore.DocumentSnapshot, error) {
	if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
		iter := col.Where("id", "==", id).Limit(1).Documents(ctx)
		defer iter.Stop()
		doc, found, err := firstMatch(iter.Next)
		if err != nil {
			return nil, err
		}
		if found {
			return doc, nil
		}
	}
	return col.Doc(rawID).Get(ctx)
}

// firstMatch reads one result. An exhausted iterator, wrapped or not, is a
// miss rather than an error.
func firstMatch(next func() (*firestore.DocumentSnapshot, error)) (*firestore.DocumentSnapshot, bool, error) {
	doc, err := next()
	if errors.Is(err, iterator.Done) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func report(collection string, doc *firestore.DocumentSnapshot) {
	data := doc.Data()

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fatalf("marshal: %v", err)
	}
	fmt.Printf("Document %s/%s\n%s\n", collection, doc.Ref.ID, pretty)

	fmt.Println("\n=== Field checks ===")
	var location *string
	if s, ok := data["location"].(string); ok {
		location = &s
	}
	key, located := util.LocationKey(location)
	fmt.Printf("location: raw=%v bucket=%q counted-in-locations=%v ranking-bucket=%q\n",
		data["location"], key, located, util.NormalizeLocation(location))

	field := amountFields[collection]
	raw, present := data[field]
	fmt.Printf("%s: present=%v raw=%v (type %T) read-as=%v\n", field, present, raw, raw, util.ToFloat(raw))

	if collection == "orders" {
		details := model.NewUserDetail(data["user_details"])
		fmt.Printf("user_details: shape=%s first=%+v\n", details.Kind(), details.FirstOrDefault())
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
