package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/terratensor/addresser/internal/adapters/repositories/manticore"
	"github.com/terratensor/addresser/internal/app/bootstrap"
	"github.com/terratensor/addresser/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := bootstrap.NewManticoreClient(cfg)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// 1. Количество записей в таблицах
	for _, table := range []string{manticore.TableAddresses, manticore.TableSynonyms} {
		fmt.Printf("\n=== COUNT %s ===\n", table)
		exists, err := client.TableExists(ctx, table)
		if err != nil || !exists {
			fmt.Println("table does not exist")
			continue
		}
		count, err := client.GetTableCount(ctx, table)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(count)
	}

	// 2. Распределение адресов по уровням
	query(ctx, client, "Адреса по уровням",
		fmt.Sprintf("SELECT address_level, COUNT(*) AS cnt FROM %s GROUP BY address_level ORDER BY address_level ASC", manticore.TableAddresses))

	// 3. Адреса без почтового индекса
	query(ctx, client, "Без почтового индекса",
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE postal_code = ''", manticore.TableAddresses))

	// 4. Первые 5 адресов
	query(ctx, client, "Первые 5 адресов",
		fmt.Sprintf("SELECT fias_id, full_text, postal_code FROM %s ORDER BY id ASC LIMIT 5", manticore.TableAddresses))
}

func query(ctx context.Context, client *manticore.ManticoreClient, title, sql string) {
	fmt.Printf("\n=== %s ===\n", title)
	rows, err := client.FetchRows(ctx, sql)
	if err != nil {
		log.Printf("query failed: %v", err)
		return
	}
	printJSON(rows)
}

func printJSON(v interface{}) {
	pretty, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(pretty))
}
