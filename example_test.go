package tilego_test

import (
	"context"
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/hupe1980/tilego"
	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/property"
	"github.com/hupe1980/tilego/sourcediff"
	"github.com/hupe1980/tilego/tilestore"
)

// Example_updateData demonstrates the diff lifecycle of a GeoJSON source:
// queue incremental updates, then commit them in one step.
func Example_updateData() {
	ctx := context.Background()

	src := tilego.NewSource()
	src.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		{
			ID:         model.IntID(1),
			Geometry:   orb.Point{13.4, 52.5},
			Properties: property.Document{"name": property.String("station")},
		},
	}))

	err := src.UpdateData(ctx, &sourcediff.SourceDiff{
		Add: []*model.Feature{{
			ID:         model.IntID(2),
			Geometry:   orb.Point{13.5, 52.4},
			Properties: property.Document{"name": property.String("park")},
		}},
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := src.Commit(ctx); err != nil {
		log.Fatal(err)
	}

	fmt.Println(src.Len())
	// Output: 2
}

// Example_snapshot demonstrates persisting a source to a tile store and
// restoring it later.
func Example_snapshot() {
	ctx := context.Background()
	store := tilestore.NewMemoryStore()

	src := tilego.NewSource(tilego.WithStore(store))
	src.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		{ID: model.IntID(1), Geometry: orb.Point{0, 0}},
	}))
	if err := src.Snapshot(ctx, "snapshots/base"); err != nil {
		log.Fatal(err)
	}

	restored := tilego.NewSource(tilego.WithStore(store))
	if err := restored.Restore(ctx, "snapshots/base"); err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.Len())
	// Output: 1
}

// Example_promoteID demonstrates promoting a property to the feature id.
func Example_promoteID() {
	ctx := context.Background()

	src := tilego.NewSource(tilego.WithPromoteID("ref"))
	src.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		{
			Geometry:   orb.Point{1, 1},
			Properties: property.Document{"ref": property.String("road-1")},
		},
	}))

	fmt.Println(src.Updateable())
	// Output: true
}
