package report

import (
	"sort"
	"time"
)

// OrderExport はレポートに必要な情報を揃えた1注文分。
type OrderExport struct {
	ID              int64
	Email           string
	ShippingAddress string
	ShippingCode    string
	OrderTime       time.Time
	Items           []ItemExport
}

type ItemExport struct {
	ProductName string
	Quantity    int64
	UnitPrice   int64
}

// Row はCSVの1行（注文×明細の組ごと）。
type Row struct {
	No              int
	OrderID         int64
	Email           string
	ShippingAddress string
	ShippingCode    string
	ProductName     string
	Quantity        int64
	UnitPrice       int64
	SubTotal        int64
	OrderTime       time.Time
}

// BuildRows はメール→住所でグルーピングし、グループ内を注文時間の昇順に
// 並べてから、明細ごとの行に展開する。明細は登録順のまま出す。
func BuildRows(orders []OrderExport) []Row {
	byEmail := make(map[string]map[string][]OrderExport)
	for _, o := range orders {
		byAddress, ok := byEmail[o.Email]
		if !ok {
			byAddress = make(map[string][]OrderExport)
			byEmail[o.Email] = byAddress
		}
		byAddress[o.ShippingAddress] = append(byAddress[o.ShippingAddress], o)
	}

	//グループの並びはキー順で固定する
	emails := make([]string, 0, len(byEmail))
	for email := range byEmail {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	rows := make([]Row, 0, len(orders))
	no := 1

	for _, email := range emails {
		byAddress := byEmail[email]

		addresses := make([]string, 0, len(byAddress))
		for address := range byAddress {
			addresses = append(addresses, address)
		}
		sort.Strings(addresses)

		for _, address := range addresses {
			group := byAddress[address]
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].OrderTime.Before(group[j].OrderTime)
			})

			for _, o := range group {
				for _, it := range o.Items {
					rows = append(rows, Row{
						No:              no,
						OrderID:         o.ID,
						Email:           o.Email,
						ShippingAddress: o.ShippingAddress,
						ShippingCode:    o.ShippingCode,
						ProductName:     it.ProductName,
						Quantity:        it.Quantity,
						UnitPrice:       it.UnitPrice,
						SubTotal:        it.Quantity * it.UnitPrice,
						OrderTime:       o.OrderTime,
					})
					no++
				}
			}
		}
	}

	return rows
}
