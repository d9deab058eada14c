// Command sync-products rebuilds the catalog feed from the full Shopify
// product listing.
package main

import (
	"github.com/example/scentquiz/internal/catalogsync"
	"github.com/example/scentquiz/internal/syncjob"
)

func main() {
	syncjob.Main(catalogsync.ModeProducts)
}
