package mapper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type link struct {
	TicketID uint
	PartID   uint
}

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestKeyBy(t *testing.T) {
	links := []link{{TicketID: 1, PartID: 10}, {TicketID: 2, PartID: 20}, {TicketID: 1, PartID: 11}}
	byTicket := KeyBy(links, func(l link) uint { return l.TicketID }, func(l link) uint { return l.PartID })

	assert.Equal(t, map[uint]uint{1: 11, 2: 20}, byTicket)
	assert.Empty(t, KeyBy[link](nil, func(l link) uint { return l.TicketID }, func(l link) uint { return l.PartID }))
}

func TestGroupBy(t *testing.T) {
	links := []link{{TicketID: 1, PartID: 10}, {TicketID: 2, PartID: 20}, {TicketID: 1, PartID: 11}}
	byTicket := GroupBy(links, func(l link) uint { return l.TicketID }, func(l link) uint { return l.PartID })

	assert.Equal(t, []uint{10, 11}, byTicket[1])
	assert.Equal(t, []uint{20}, byTicket[2])
	assert.Nil(t, byTicket[3])
}
