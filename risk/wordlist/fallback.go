package wordlist

// FallbackWords is the embedded default sensitive-word list, used whenever
// the word store is unreachable. It is intentionally a hard-coded baseline:
// administrators extend the live list through the store, but an outage must
// never leave content completely unscreened.
var FallbackWords = []string{
	// 违法相关
	"毒品", "吸毒", "大麻", "海洛因", "冰毒", "摇头丸", "K粉", "鸦片",
	"卖淫", "嫖娼", "性服务", "情色服务",
	"赌博", "赌场", "博彩", "六合彩", "时时彩", "百家乐", "炸金花",
	"诈骗", "传销", "非法集资", "洗钱", "高利贷", "裸贷",
	"假钞", "假发票", "办证", "买学位", "代考", "代写论文",
	"黑客", "攻击网站", "木马", "钓鱼网站", "刷单", "刷信誉", "刷钻",
	// 违禁品
	"枪支", "弹药", "炸药", "炸弹", "雷管", "手枪", "气枪",
	"管制刀具", "匕首", "三棱刮刀",
	"迷药", "春药", "听话水", "蒙汗药",
	// 极端主义
	"恐怖", "恐怖袭击", "自杀袭击", "人体炸弹", "圣战",
	// 色情低俗
	"色情", "淫秽", "裸聊", "裸舞", "脱衣", "高潮", "做爱",
	"性交", "性虐", "SM", "调教", "肛交", "口交",
	"A片", "AV", "黄片", "黄色网站", "色情网站",
	// 违规医疗
	"流产", "堕胎", "无痛人流", "取环", "上环", "代孕",
	"卖血", "卖肾", "卖器官", "换肾",
	// 宗教/民族
	"法轮功", "邪教", "全能神", "呼喊派", "门徒会",
	// 其他违规
	"翻墙", "VPN", "梯子", "代购",
	"发票", "虚开发票", "套现", "提现",
	"内幕", "内幕消息", "稳赚", "包赚",
}
