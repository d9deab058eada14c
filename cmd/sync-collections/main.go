// Command sync-collections rebuilds the catalog feed from the gendered
// Shopify collections.
package main

import (
	"github.com/example/scentquiz/internal/catalogsync"
	"github.com/example/scentquiz/internal/syncjob"
)

func main() {
	syncjob.Main(catalogsync.ModeCollections)
}
