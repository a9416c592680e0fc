package jsonrepair

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractObject(t *testing.T) {
	Convey("ExtractObject 从模型输出中提取 JSON 对象", t, func() {
		Convey("纯 JSON 直接解析", func() {
			var v map[string]string
			err := ExtractObject(`{"topic": "Rome"}`, &v)
			So(err, ShouldBeNil)
			So(v["topic"], ShouldEqual, "Rome")
		})

		Convey("剥离 markdown 代码块", func() {
			raw := "```json\n{\"topic\": \"Rome\"}\n```"
			var v map[string]string
			So(ExtractObject(raw, &v), ShouldBeNil)
			So(v["topic"], ShouldEqual, "Rome")
		})

		Convey("忽略 JSON 前后的说明文字", func() {
			raw := "Here is the result:\n{\"topic\": \"Rome\"}\nHope this helps!"
			var v map[string]string
			So(ExtractObject(raw, &v), ShouldBeNil)
			So(v["topic"], ShouldEqual, "Rome")
		})

		Convey("截断输出补齐闭合括号后成功", func() {
			raw := `{"topic": "Rome", "figures": [{"name": "Caesar"`
			var v struct {
				Topic   string `json:"topic"`
				Figures []struct {
					Name string `json:"name"`
				} `json:"figures"`
			}
			So(ExtractObject(raw, &v), ShouldBeNil)
			So(v.Topic, ShouldEqual, "Rome")
			So(len(v.Figures), ShouldEqual, 1)
			So(v.Figures[0].Name, ShouldEqual, "Caesar")
		})

		Convey("字符串中途截断也能修复", func() {
			raw := `{"topic": "Ro`
			var v map[string]string
			So(ExtractObject(raw, &v), ShouldBeNil)
			So(v["topic"], ShouldEqual, "Ro")
		})

		Convey("完全不含 JSON 时返回 ParseError", func() {
			var v map[string]string
			err := ExtractObject("no json here at all", &v)
			So(err, ShouldNotBeNil)

			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
			So(parseErr.Excerpt, ShouldEqual, "no json here at all")
		})

		Convey("错误附带的原文摘录截断到 500 字符", func() {
			raw := strings.Repeat("x", 2000)
			var v map[string]string
			err := ExtractObject(raw, &v)

			var parseErr *ParseError
			So(errors.As(err, &parseErr), ShouldBeTrue)
			So(len(parseErr.Excerpt), ShouldEqual, 500)
		})
	})
}

func TestExtractArray(t *testing.T) {
	Convey("ExtractArray 从模型输出中提取 JSON 数组", t, func() {
		Convey("带 markdown 与截断的场景数组", func() {
			raw := "```json\n[{\"scene_number\": 1, \"script_snippet\": \"Rome fell.\"}, {\"scene_number\": 2"
			var scenes []struct {
				SceneNumber int `json:"scene_number"`
			}
			So(ExtractArray(raw, &scenes), ShouldBeNil)
			So(len(scenes), ShouldEqual, 2)
			So(scenes[1].SceneNumber, ShouldEqual, 2)
		})

		Convey("对象形状的输入提取不到数组", func() {
			var scenes []int
			err := ExtractArray(`{"scenes": "none"}`, &scenes)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBalance(t *testing.T) {
	Convey("Balance 补齐缺失的闭合括号", t, func() {
		Convey("已平衡的输入保持不变", func() {
			for _, s := range []string{`{}`, `[]`, `{"a": [1, 2]}`, `[{"a": "b"}]`} {
				So(Balance(s), ShouldEqual, s)
			}
		})

		Convey("按嵌套顺序补齐", func() {
			So(Balance(`{"a": [1, {"b": 2`), ShouldEqual, `{"a": [1, {"b": 2}]}`)
		})

		Convey("字符串内的括号不参与配对", func() {
			So(Balance(`{"a": "[{"`), ShouldEqual, `{"a": "[{"}`)
		})

		Convey("修复结果再修复一次保持不变", func() {
			inputs := []string{
				`{"a": [1, 2`,
				`[{"scene_number": 1`,
				`{"topic": "Ro`,
			}
			for _, in := range inputs {
				once := Balance(in)
				So(Balance(once), ShouldEqual, once)
				So(Balance(Balance(once)), ShouldEqual, once)
			}
		})
	})
}
