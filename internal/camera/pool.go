package camera

// Pool はタイプごとのデバイススタック
// 取り出しは後から検出したものから（スタック順）
type Pool struct {
	labels []string
	stacks map[string][]Device
}

// NewPool はタイプテーブルのラベル集合でプールを作る
//
// Type が空のデバイスは捨てる。ラベル集合に無いタイプのデバイスはグループを増やさず
// rejected として呼び出し側に返す。
func NewPool(labels []string, devices []Device) (pool *Pool, rejected []Device) {
	p := &Pool{
		labels: append([]string(nil), labels...),
		stacks: make(map[string][]Device, len(labels)),
	}
	for _, label := range labels {
		p.stacks[label] = []Device{}
	}

	for _, d := range devices {
		if d.Type == "" {
			continue
		}
		stack, ok := p.stacks[d.Type]
		if !ok {
			rejected = append(rejected, d)
			continue
		}
		p.stacks[d.Type] = append(stack, d)
	}

	return p, rejected
}

// Claim は指定タイプのスタック末尾のデバイスを取り出す
// 空または未知のタイプなら ok=false。取り出したデバイスは戻せない
func (p *Pool) Claim(label string) (*Device, bool) {
	stack := p.stacks[label]
	if len(stack) == 0 {
		return nil, false
	}

	d := stack[len(stack)-1]
	p.stacks[label] = stack[:len(stack)-1]
	return &d, true
}

// Remaining は指定タイプの残数を返す
func (p *Pool) Remaining(label string) int {
	return len(p.stacks[label])
}

// Counts はラベルごとの残数を返す
func (p *Pool) Counts() map[string]int {
	counts := make(map[string]int, len(p.labels))
	for _, label := range p.labels {
		counts[label] = len(p.stacks[label])
	}
	return counts
}

// Labels はプールのラベルをテーブル順で返す
func (p *Pool) Labels() []string {
	return append([]string(nil), p.labels...)
}
