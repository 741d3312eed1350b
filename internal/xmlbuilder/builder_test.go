package xmlbuilder

import (
	"bytes"
	"testing"
)

func TestAddChildBuildsNestedTree(t *testing.T) {
	root := NewElement("Document")
	hdr := root.AddChild("GrpHdr")
	hdr.AddChildValue("MsgId", "MSG-1")
	hdr.AddChildValue("NbOfTxs", "2")

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}

	grpHdr := root.Find("GrpHdr")
	if grpHdr == nil {
		t.Fatal("expected GrpHdr child")
	}
	if got := grpHdr.Find("MsgId").Value; got != "MSG-1" {
		t.Fatalf("expected MsgId MSG-1, got %s", got)
	}
	if got := grpHdr.Find("NbOfTxs").Value; got != "2" {
		t.Fatalf("expected NbOfTxs 2, got %s", got)
	}
}

func TestFindAllReturnsChildrenInOrder(t *testing.T) {
	root := NewElement("CstmrDrctDbtInitn")
	root.AddChildValue("PmtInf", "a")
	root.AddChildValue("GrpHdr", "x")
	root.AddChildValue("PmtInf", "b")

	matches := root.FindAll("PmtInf")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Value != "a" || matches[1].Value != "b" {
		t.Fatalf("expected insertion order, got %s, %s", matches[0].Value, matches[1].Value)
	}

	if root.Find("Missing") != nil {
		t.Fatal("expected nil for an absent child")
	}
}

func TestSerializeWritesDeclarationAttributesAndIndentation(t *testing.T) {
	root := NewElement("Document")
	root.AddAttribute("xmlns", "urn:example")
	amt := root.AddChildValue("InstdAmt", "42.00")
	amt.AddAttribute("Ccy", "EUR")

	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<Document xmlns=\"urn:example\">\n" +
		"  <InstdAmt Ccy=\"EUR\">42.00</InstdAmt>\n" +
		"</Document>\n"

	if got := string(Serialize(root)); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeEscapesSpecialCharacters(t *testing.T) {
	root := NewElement("RmtInf")
	root.AddChildValue("Ustrd", `M&uuml;ller <"quoted"> 'x'`)

	out := string(Serialize(root))
	want := "<Ustrd>M&amp;uuml;ller &lt;&quot;quoted&quot;&gt; &apos;x&apos;</Ustrd>"
	if !bytes.Contains([]byte(out), []byte(want)) {
		t.Fatalf("expected escaped value in output:\n%s", out)
	}
}

func TestSerializeEscapesAttributeValues(t *testing.T) {
	root := NewElement("Doc")
	root.AddAttribute("note", `a & "b"`)

	out := string(Serialize(root))
	if !bytes.Contains([]byte(out), []byte(`note="a &amp; &quot;b&quot;"`)) {
		t.Fatalf("expected escaped attribute in output:\n%s", out)
	}
}

func TestSerializeEmitsSelfClosingTagForEmptyElement(t *testing.T) {
	root := NewElement("PmtInf")
	root.AddChild("UltmtCdtr")

	out := string(Serialize(root))
	if !bytes.Contains([]byte(out), []byte("<UltmtCdtr/>")) {
		t.Fatalf("expected self-closing tag, got:\n%s", out)
	}
}

func TestSerializeWithOptionsHonorsIndentAndDeclaration(t *testing.T) {
	root := NewElement("Document")
	root.AddChildValue("MsgId", "MSG-1")

	options := SerializeOptions{
		Indent:                "\t",
		IncludeXMLDeclaration: false,
	}

	want := "<Document>\n\t<MsgId>MSG-1</MsgId>\n</Document>\n"
	if got := string(SerializeWithOptions(root, options)); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	root := NewElement("Document")
	root.AddAttribute("xmlns", "urn:example")
	for _, id := range []string{"a", "b", "c"} {
		root.AddChildValue("PmtInfId", id)
	}

	first := Serialize(root)
	second := Serialize(root)
	if !bytes.Equal(first, second) {
		t.Fatal("serialization of the same tree is not byte-identical")
	}
}
