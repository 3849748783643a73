package apitest

// SeedRecipes returns a small catalogue that mixes every payload shape the
// client has to cope with: canonical records, image synonyms, plain-string
// ingredients, Indonesian field names and unnumbered steps.
func SeedRecipes() []map[string]any {
	return []map[string]any{
		{
			"id":             "1",
			"name":           "Nasi Goreng Kampung",
			"description":    "Nasi goreng sederhana dengan telur dan kecap manis.",
			"category":       "makanan",
			"difficulty":     "mudah",
			"prep_time":      "20 menit",
			"image_url":      "https://images.example.com/nasi-goreng.jpg",
			"average_rating": 4.6,
			"created_at":     "2024-12-01T09:00:00Z",
			"ingredients": []any{
				map[string]any{"id": "i1", "name": "Nasi putih", "quantity": "2 piring"},
				map[string]any{"id": "i2", "name": "Telur", "quantity": "2 butir"},
				map[string]any{"id": "i3", "name": "Kecap manis", "quantity": "2 sdm"},
			},
			"steps": []any{
				map[string]any{"id": "s1", "step_number": 1, "instruction": "Tumis bawang hingga harum."},
				map[string]any{"id": "s2", "step_number": 2, "instruction": "Masukkan telur, orak-arik."},
				map[string]any{"id": "s3", "step_number": 3, "instruction": "Tambahkan nasi dan kecap, aduk rata."},
			},
		},
		{
			"_id":            "2",
			"id":             "2",
			"name":           "Es Teh Manis",
			"description":    "Teh melati dingin dengan gula.",
			"category":       "minuman",
			"difficulty":     "mudah",
			"prep_time":      "5 menit",
			"image":          "https://images.example.com/es-teh.jpg",
			"average_rating": 4.1,
			"created_at":     "2024-12-02T09:00:00Z",
			"ingredients":    []any{"Teh melati", "Gula pasir", "Es batu"},
			"steps":          []any{"Seduh teh dengan air panas.", "Larutkan gula.", "Tuang ke gelas berisi es."},
		},
		{
			"id":          "3",
			"name":        "Rendang Daging",
			"description": "Daging sapi dimasak lama dengan santan dan bumbu.",
			"category":    "makanan",
			"difficulty":  "sulit",
			"prep_time":   "4 jam",
			"imageUrl":    "https://images.example.com/rendang.jpg",
			"created_at":  "2024-12-03T09:00:00Z",
			"ingredients": []any{
				map[string]any{"_id": "r1", "nama": "Daging sapi", "jumlah": "1 kg"},
				map[string]any{"_id": "r2", "nama": "Santan", "jumlah": "1 liter"},
				map[string]any{"item": "Cabai merah", "qty": "100 gr"},
			},
			"steps": []any{
				map[string]any{"order": 1, "langkah": "Haluskan bumbu."},
				map[string]any{"order": 2, "text": "Masak santan bersama bumbu."},
				map[string]any{"description": "Masukkan daging, masak hingga kering."},
			},
		},
		{
			"id":             "4",
			"name":           "Soto Ayam",
			"description":    "Soto kuning dengan suwiran ayam.",
			"category":       "makanan",
			"difficulty":     "sedang",
			"prep_time":      "1 jam",
			"average_rating": 4.8,
			"created_at":     "2024-12-04T09:00:00Z",
			"ingredients": []any{
				map[string]any{"name": "Ayam", "quantity": "500 gr"},
				"Kunyit",
				nil,
			},
			"steps": []any{
				map[string]any{"number": 1, "step": "Rebus ayam."},
				map[string]any{"number": 2, "step": "Tumis bumbu kuning."},
			},
		},
		{
			"id":             "5",
			"name":           "Wedang Jahe",
			"description":    "Minuman jahe hangat.",
			"category":       "minuman",
			"difficulty":     "mudah",
			"prep_time":      "15 menit",
			"average_rating": 3.9,
			"created_at":     "2024-12-05T09:00:00Z",
			"ingredients": []any{
				map[string]any{"name": "Jahe", "quantity": "1 ruas"},
				map[string]any{"name": "Gula merah", "quantity": "2 sdm"},
			},
			"steps": []any{"Bakar jahe lalu memarkan.", "Rebus bersama gula merah."},
		},
		{
			"id":          "6",
			"name":        "Klepon",
			"description": "Kue ketan isi gula merah dengan taburan kelapa.",
			"category":    "makanan",
			"difficulty":  "sedang",
			"prep_time":   "45 menit",
			"created_at":  "2024-12-06T09:00:00Z",
		},
	}
}
