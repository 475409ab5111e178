package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// LocationGroup is the FIFO sequence of orders for one delivery location.
type LocationGroup struct {
	Location kernel.Location
	Orders   []*order.Order
}

// OrderGrouper partitions a batch of candidate orders by delivery location.
//
// Groups come out in the order their location first appears in the input,
// and orders keep their input (fetch) order inside each group. An empty
// input yields no groups.
//
// Example:
//
//	groups := services.NewOrderGrouper().Group(orders)
//	for _, g := range groups {
//	    fmt.Println(g.Location, len(g.Orders))
//	}
type OrderGrouper struct{}

func NewOrderGrouper() OrderGrouper {
	return OrderGrouper{}
}

// Group skips nil and unconstructed orders.
func (OrderGrouper) Group(orders []*order.Order) []LocationGroup {
	index := make(map[kernel.Location]int)
	groups := make([]LocationGroup, 0)

	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}

		i, ok := index[o.Location()]
		if !ok {
			i = len(groups)
			index[o.Location()] = i
			groups = append(groups, LocationGroup{Location: o.Location()})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}

	return groups
}
