// Package selection adalah store eksplisit untuk baris tabel yang dicentang
// sebelum bulk download.
package selection

import "encoding/json"

// Item menyimpan id baris beserta salinan row-nya, sehingga download tidak perlu
// mengambil ulang data dari backend.
type Item struct {
	ID  int64           `json:"id" validate:"required,gt=0"`
	Row json.RawMessage `json:"row,omitempty"`
}

type Selection struct {
	Screen string `json:"screen"`
	Items  []Item `json:"items"`
	All    bool   `json:"all"`
}

func (s Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func (s Selection) Empty() bool { return len(s.Items) == 0 }

func (s Selection) indexOf(id int64) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Toggle mencentang atau melepas satu baris. All diturunkan dari jumlah baris
// terpilih terhadap ukuran halaman.
func (s *Selection) Toggle(item Item, pageSize int) {
	if i := s.indexOf(item.ID); i >= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
	} else {
		s.Items = append(s.Items, item)
	}
	s.All = pageSize > 0 && len(s.Items) == pageSize
}

// ToggleAll memilih seluruh baris halaman, atau mengosongkan bila semua sudah terpilih.
func (s *Selection) ToggleAll(page []Item) {
	if s.All {
		s.Items = []Item{}
		s.All = false
		return
	}
	s.Items = append([]Item{}, page...)
	s.All = len(page) > 0
}
