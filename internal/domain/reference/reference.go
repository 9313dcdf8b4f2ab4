// Package reference holds the curated lesion education table and the
// referral specialist card. Both are static server-side data: analysis
// records snapshot them at save time so stored records stay stable when
// the curated text is revised later.
package reference

// LesionInfo is the patient-facing education entry for one lesion class.
type LesionInfo struct {
	Description string `json:"description"`
	Symptoms    string `json:"symptoms"`
	Actions     string `json:"actions"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
	Link        string `json:"link"`
}

// Doctor is the referral specialist card attached to saved analyses.
type Doctor struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

var lesionTable = map[string]LesionInfo{
	"Actinic Keratoses": {
		Description: "A rough, scaly patch on the skin caused by sun exposure.",
		Symptoms:    "Dry, scaly, or rough patches on the skin; may be red or brown.",
		Actions:     "Consult a dermatologist for evaluation.",
		Treatment:   "Cryotherapy, topical medications, or laser therapy.",
		Prevention:  "Use sunscreen and avoid excessive sun exposure.",
		Link:        "https://www.mayoclinic.org/diseases-conditions/actinic-keratosis/symptoms-causes/syc-20354969",
	},
	"Benign Keratosis": {
		Description: "A non-cancerous skin growth that appears as a brown, black, or tan spot.",
		Symptoms:    "Raised, waxy, or wart-like growths.",
		Actions:     "Monitor for any changes; consult a doctor if needed.",
		Treatment:   "No treatment required unless bothersome, removal via cryotherapy or laser.",
		Prevention:  "Regular skin checks and proper hygiene.",
		Link:        "https://www.mayoclinic.org/diseases-conditions/seborrheic-keratosis/symptoms-causes/syc-20353878",
	},
	"Melanoma": {
		Description: "A serious form of skin cancer that develops in the cells that produce melanin.",
		Symptoms:    "Unusual moles, changes in size, shape, or color of existing moles.",
		Actions:     "Immediate medical consultation is necessary.",
		Treatment:   "Surgery, chemotherapy, radiation, or targeted therapy.",
		Prevention:  "Use sunscreen, avoid tanning beds, and perform regular skin checks.",
		Link:        "https://www.mayoclinic.org/diseases-conditions/melanoma/symptoms-causes/syc-20374884",
	},
	"Melanocytic Nevi": {
		Description: "Commonly known as moles, these are usually benign but should be monitored.",
		Symptoms:    "Dark brown to black spots, flat or raised.",
		Actions:     "Monitor for changes; consult a doctor if it changes in size or color.",
		Treatment:   "No treatment unless suspicious; surgical removal if needed.",
		Prevention:  "Regular skin checks and sun protection.",
		Link:        "https://www.ncbi.nlm.nih.gov/books/NBK470451/",
	},
	"Basal Cell Carcinoma": {
		Description: "A type of skin cancer that begins in the basal cells.",
		Symptoms:    "Pearly or waxy bumps, flat scaly patches, or sores that don't heal.",
		Actions:     "Consult a dermatologist for a biopsy.",
		Treatment:   "Surgical excision, radiation, or topical treatments.",
		Prevention:  "Avoid prolonged sun exposure, use sunscreen.",
		Link:        "https://www.mayoclinic.org/diseases-conditions/basal-cell-carcinoma/symptoms-causes/syc-20354187",
	},
}

var fallback = LesionInfo{
	Description: "No description available",
	Symptoms:    "No symptoms information",
	Actions:     "Consult a dermatologist",
	Treatment:   "Treatment information not available",
	Prevention:  "General skin care recommended",
	Link:        "https://www.aad.org/public/everyday-care/skin-care-basics",
}

var specialist = Doctor{
	Name:          "Dr. Anandi Gopal Joshi",
	Qualification: "MD, Dermatology (15+ years experience)",
	Location:      "Apollo Hospital, Mumbai",
	Phone:         "+91 12345 67890",
	Email:         "dr.anandi@apollo.com",
}

// Lookup returns the education entry for a lesion display name. Unknown
// names get the generic fallback entry and ok=false.
func Lookup(lesionType string) (info LesionInfo, ok bool) {
	if info, ok := lesionTable[lesionType]; ok {
		return info, true
	}
	return fallback, false
}

// Fallback returns the generic entry used when a lesion type is unknown.
func Fallback() LesionInfo {
	return fallback
}

// Specialist returns the referral doctor card.
func Specialist() Doctor {
	return specialist
}

// Known reports whether the display name has a curated entry.
func Known(lesionType string) bool {
	_, ok := lesionTable[lesionType]
	return ok
}

// Names returns the curated lesion display names.
func Names() []string {
	names := make([]string, 0, len(lesionTable))
	for name := range lesionTable {
		names = append(names, name)
	}
	return names
}
