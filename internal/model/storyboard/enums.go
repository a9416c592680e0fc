package storyboard

import "fmt"

// GenerationStatus 分镜图片的生成状态
type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"    // 待生成
	GenerationStatusGenerating GenerationStatus = "generating" // 生成中
	GenerationStatusCompleted  GenerationStatus = "completed"  // 已完成
	GenerationStatusError      GenerationStatus = "error"      // 失败
)

// HistoricalEra 历史时代
type HistoricalEra string

const (
	EraRomanRepublic HistoricalEra = "Roman Republic"
	EraRomanEmpire   HistoricalEra = "Roman Empire"
	EraMedieval      HistoricalEra = "Medieval"
	EraNapoleonic    HistoricalEra = "Napoleonic"
	EraPrussian      HistoricalEra = "Prussian"
	EraOther         HistoricalEra = "Other"
)

// ContentType 内容类型
type ContentType string

const (
	ContentTypeBiography ContentType = "Biography"
	ContentTypeBattle    ContentType = "Battle"
	ContentTypeCulture   ContentType = "Culture"
	ContentTypeMythology ContentType = "Mythology"
)

// NarrativeTone 叙事基调
type NarrativeTone string

const (
	ToneEpic        NarrativeTone = "Epic"
	ToneDocumentary NarrativeTone = "Documentary"
	ToneTragic      NarrativeTone = "Tragic"
	ToneEducational NarrativeTone = "Educational"
)

// ValidateEra 验证时代取值
func ValidateEra(era HistoricalEra) error {
	switch era {
	case EraRomanRepublic, EraRomanEmpire, EraMedieval, EraNapoleonic, EraPrussian, EraOther:
		return nil
	}
	return fmt.Errorf("invalid era: %q", era)
}

// ValidateContentType 验证内容类型取值
func ValidateContentType(ct ContentType) error {
	switch ct {
	case ContentTypeBiography, ContentTypeBattle, ContentTypeCulture, ContentTypeMythology:
		return nil
	}
	return fmt.Errorf("invalid content type: %q", ct)
}

// ValidateTone 验证叙事基调取值
func ValidateTone(tone NarrativeTone) error {
	switch tone {
	case ToneEpic, ToneDocumentary, ToneTragic, ToneEducational:
		return nil
	}
	return fmt.Errorf("invalid narrative tone: %q", tone)
}
