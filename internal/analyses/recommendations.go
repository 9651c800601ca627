package analyses

import "github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses/recommendations"

type (
	Course            = recommendations.Course
	Video             = recommendations.Video
	RecommendationSet = recommendations.Set
)

// Recommendations parses courses, videos and skills out of the full response.
// A failed result yields empty lists.
func (r Result) Recommendations() RecommendationSet {
	if r.Failed() {
		return recommendations.FromText("")
	}
	return recommendations.FromText(r.FullResponse)
}
