package usecase

// Static marketing comparison data served to the frontend comparison page.

type ComparisonFeature struct {
	Feature string `json:"feature"`
	Murf    string `json:"murf"`
	Others  string `json:"others"`
}

type ComparisonBenchmark struct {
	Metric string `json:"metric"`
	Murf   string `json:"murf"`
	Others string `json:"others"`
	Better string `json:"better"`
}

type ComparisonData struct {
	Features   []ComparisonFeature   `json:"features"`
	Benchmarks []ComparisonBenchmark `json:"benchmarks"`
}

func Comparison() ComparisonData {
	return ComparisonData{
		Features: []ComparisonFeature{
			{Feature: "Response Latency", Murf: "0.3s", Others: "2-5s"},
			{Feature: "Voice Quality", Murf: "Natural & Human-like", Others: "Robotic"},
			{Feature: "Emotional Range", Murf: "Wide range of emotions", Others: "Flat delivery"},
			{Feature: "Pronunciation Accuracy", Murf: "99%+ accurate", Others: "Frequent errors"},
			{Feature: "Voice Variety", Murf: "120+ voices", Others: "20-40 voices"},
			{Feature: "Languages Supported", Murf: "20+ languages", Others: "Limited"},
			{Feature: "Free Tier", Murf: "1M characters free", Others: "5k-50k characters"},
			{Feature: "API Integration", Murf: "Simple REST API", Others: "Complex SDKs"},
			{Feature: "Audio Quality", Murf: "24kHz studio quality", Others: "16kHz"},
			{Feature: "Customization", Murf: "Pitch, speed, emphasis", Others: "Minimal"},
		},
		Benchmarks: []ComparisonBenchmark{
			{Metric: "Average Latency", Murf: "300ms", Others: "2000-5000ms", Better: "murf"},
			{Metric: "Audio Sample Rate", Murf: "24kHz", Others: "16kHz", Better: "murf"},
			{Metric: "Voice Count", Murf: "120+", Others: "20-40", Better: "murf"},
			{Metric: "API Calls/min (Free)", Murf: "60", Others: "10-20", Better: "murf"},
			{Metric: "Character Limit/Request", Murf: "3000", Others: "500-1000", Better: "murf"},
			{Metric: "Free Tier Characters", Murf: "1,000,000", Others: "5,000-50,000", Better: "murf"},
		},
	}
}
