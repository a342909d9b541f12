package problem

// 난이도(solved.ac 티어)
type Tier int

const (
	TierUnknown Tier = 0
	TierMin     Tier = 1  // Bronze V
	TierMax     Tier = 30 // Ruby I
)

// 지원가능한 티어 문자열(인덱스가 티어 번호)
var tierNames = []string{
	"Unknown",
	"Bronze V", "Bronze IV", "Bronze III", "Bronze II", "Bronze I",
	"Silver V", "Silver IV", "Silver III", "Silver II", "Silver I",
	"Gold V", "Gold IV", "Gold III", "Gold II", "Gold I",
	"Platinum V", "Platinum IV", "Platinum III", "Platinum II", "Platinum I",
	"Diamond V", "Diamond IV", "Diamond III", "Diamond II", "Diamond I",
	"Ruby V", "Ruby IV", "Ruby III", "Ruby II", "Ruby I",
}

func (t Tier) Known() bool {
	return t >= TierMin && t <= TierMax
}

func (t Tier) String() string {
	if !t.Known() {
		return tierNames[TierUnknown]
	}
	return tierNames[t]
}
