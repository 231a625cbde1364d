package persona

const programmingInstruction = "あなたはプログラミングとソフトウェア開発の専門家です。技術的な質問に対して、具体的なコード例や最適な解決策を提案してください。"

const healthInstruction = "あなたは健康と医療の専門家です。健康に関する質問に対して、科学的根拠に基づいた情報を提供してください。ただし、診断や治療の代替ではないことを明記してください。"

const businessInstruction = "あなたはビジネスと経営の専門家です。経営戦略、マーケティング、起業に関する質問に対して、実践的なアドバイスを提供してください。"

const educationInstruction = "あなたは教育と学習の専門家です。学習方法、教育理論、スキルアップに関する質問に対して、効果的な学習戦略を提案してください。"

// HealthDisclaimer must appear in the health persona's instruction.
const HealthDisclaimer = "診断や治療の代替ではない"

// table is copied into each Registry; nothing writes to it after init.
var table = [...]Persona{
	{
		ID:                Programming,
		Alias:             "programming",
		SystemInstruction: programmingInstruction,
		Description:       "💻 プログラミング、ソフトウェア開発、技術的な問題解決について相談できます",
		Caution:           "プログラミング相談: 提供されるコードは参考例です。実際の使用前に十分テストしてください",
	},
	{
		ID:                Health,
		Alias:             "health",
		SystemInstruction: healthInstruction,
		Description:       "🏥 健康管理、医療知識、予防医学について相談できます（診断・治療の代替ではありません）",
		Caution:           "健康・医療相談: 提供される情報は一般的な知識であり、医師の診断や治療に代わるものではありません",
	},
	{
		ID:                Business,
		Alias:             "business",
		SystemInstruction: businessInstruction,
		Description:       "💼 経営戦略、マーケティング、起業、ビジネス全般について相談できます",
		Caution:           "ビジネス相談: 市場状況や個別の事情により結果は異なる場合があります",
	},
	{
		ID:                Education,
		Alias:             "education",
		SystemInstruction: educationInstruction,
		Description:       "📚 学習方法、教育理論、スキルアップについて相談できます",
		Caution:           "教育相談: 個人差があるため、自分に合った方法を見つけることが重要です",
	},
}
