package pricing

import (
	"github.com/duomart-next/internal/constants"

	"github.com/shopspring/decimal"
)

var (
	// DefaultCompetitiveBandPercent 同类商品价格带宽（±%）
	DefaultCompetitiveBandPercent = decimal.NewFromInt(30)
	// DefaultCompetitiveTolerancePercent 判定为 competitive 的偏差容忍度
	DefaultCompetitiveTolerancePercent = decimal.NewFromInt(5)
	suggestionOffsetPercent            = decimal.NewFromInt(5)
)

// Peer 参与比较的同类商品
type Peer struct {
	ProductID      uint            `json:"product_id"`
	Title          string          `json:"title"`
	Brand          string          `json:"brand"`
	Price          decimal.Decimal `json:"price"`
	HasAnyDiscount bool            `json:"has_any_discount"`
}

// CompetitiveInput 竞争分析输入
type CompetitiveInput struct {
	Price            decimal.Decimal
	HasAnyDiscount   bool
	Peers            []Peer
	TolerancePercent decimal.Decimal
	Scale            int32
}

// Analysis 市场定位分析
type Analysis struct {
	ProductPrice     decimal.Decimal     `json:"product_price"`
	PeerAverage      decimal.NullDecimal `json:"peer_average"`
	PeerMin          decimal.NullDecimal `json:"peer_min"`
	PeerMax          decimal.NullDecimal `json:"peer_max"`
	PeerCount        int                 `json:"peer_count"`
	DeviationPercent decimal.NullDecimal `json:"deviation_percent"`
	MarketPosition   string              `json:"market_position"`
}

// Recommendation 定价建议，Code 由 HTTP 层本地化
type Recommendation struct {
	Code           string              `json:"code"`
	SuggestedPrice decimal.NullDecimal `json:"suggested_price"`
	Args           []string            `json:"args,omitempty"`
}

// CompetitiveResult 竞争分析结果
type CompetitiveResult struct {
	Analysis        Analysis         `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Competitors     []Peer           `json:"competitors"`
}

// PriceBand 返回以 price 为中心 ±bandPercent 的价格区间
func PriceBand(price, bandPercent decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if bandPercent.IsNegative() {
		bandPercent = decimal.Zero
	}
	delta := price.Mul(bandPercent).Div(hundred)
	low := price.Sub(delta)
	if low.IsNegative() {
		low = decimal.Zero
	}
	return low, price.Add(delta)
}

// AnalyzeCompetition 计算偏差与市场定位并给出建议；无同类商品时返回 no_competition 而非错误
func AnalyzeCompetition(input CompetitiveInput) CompetitiveResult {
	tolerance := input.TolerancePercent
	if !tolerance.IsPositive() {
		tolerance = DefaultCompetitiveTolerancePercent
	}
	peers := input.Peers
	if peers == nil {
		peers = []Peer{}
	}
	result := CompetitiveResult{
		Analysis: Analysis{
			ProductPrice: input.Price,
			PeerCount:    len(peers),
		},
		Competitors: peers,
	}
	if len(peers) == 0 {
		result.Analysis.MarketPosition = constants.MarketPositionNoCompetition
		result.Recommendations = []Recommendation{{Code: constants.RecommendationNoCompetition}}
		return result
	}

	sum := decimal.Zero
	minPrice, maxPrice := peers[0].Price, peers[0].Price
	for _, peer := range peers {
		sum = sum.Add(peer.Price)
		minPrice = decimal.Min(minPrice, peer.Price)
		maxPrice = decimal.Max(maxPrice, peer.Price)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(peers)))).Round(input.Scale)
	result.Analysis.PeerAverage = decimal.NewNullDecimal(average)
	result.Analysis.PeerMin = decimal.NewNullDecimal(minPrice)
	result.Analysis.PeerMax = decimal.NewNullDecimal(maxPrice)

	if !average.IsPositive() {
		result.Analysis.MarketPosition = constants.MarketPositionCompetitive
		result.Recommendations = []Recommendation{{Code: constants.RecommendationMaintainPrice}}
		return result
	}
	deviation := input.Price.Sub(average).Div(average).Mul(hundred).Round(2)
	result.Analysis.DeviationPercent = decimal.NewNullDecimal(deviation)

	switch {
	case deviation.LessThan(tolerance.Neg()):
		result.Analysis.MarketPosition = constants.MarketPositionLow
		suggested := average.Mul(hundred.Sub(suggestionOffsetPercent)).Div(hundred).Round(input.Scale)
		result.Recommendations = append(result.Recommendations, Recommendation{
			Code:           constants.RecommendationRaisePrice,
			SuggestedPrice: decimal.NewNullDecimal(suggested),
			Args:           []string{deviation.Abs().String(), suggested.StringFixed(input.Scale)},
		})
	case deviation.GreaterThan(tolerance):
		result.Analysis.MarketPosition = constants.MarketPositionHigh
		suggested := average.Mul(hundred.Add(suggestionOffsetPercent)).Div(hundred).Round(input.Scale)
		result.Recommendations = append(result.Recommendations, Recommendation{
			Code:           constants.RecommendationLowerPrice,
			SuggestedPrice: decimal.NewNullDecimal(suggested),
			Args:           []string{deviation.String(), suggested.StringFixed(input.Scale)},
		})
		if input.HasAnyDiscount {
			result.Recommendations = append(result.Recommendations, Recommendation{Code: constants.RecommendationHighlightDiscount})
		}
	default:
		result.Analysis.MarketPosition = constants.MarketPositionCompetitive
		result.Recommendations = append(result.Recommendations, Recommendation{
			Code: constants.RecommendationMaintainPrice,
			Args: []string{deviation.String()},
		})
	}
	return result
}
